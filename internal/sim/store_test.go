package sim

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gsexplode/internal/config"
)

type fakeReloader struct {
	err   error
	calls []ModelSource
}

func (f *fakeReloader) ReloadModel(src ModelSource) error {
	f.calls = append(f.calls, src)
	return f.err
}

func testParams() Parameters {
	return Parameters{
		Magnitude:       2,
		ExplosionOrigin: mgl32.Vec3{0, 0.5, 0},
		FalloffStrength: 1,
		FalloffRadius:   2,
		RandomStrength:  0.5,
		ImpulseDecay:    0.1,
		GravityPower:    1,
		TimeMultiplier:  1,
	}
}

func testModel() ModelSource {
	return ModelSource{Path: "resources/models/cube.obj", Format: "N3F_V3F"}
}

func TestFromConfig(t *testing.T) {
	p := FromConfig(config.Default().Simulation)

	assert.Equal(t, float32(2), p.Magnitude)
	assert.Equal(t, float32(1), p.TimeMultiplier)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, p.ExplosionOrigin)
	assert.InDelta(t, 0.9, p.RetainedImpulse(), 1e-6)
}

func TestToConfigRoundTrip(t *testing.T) {
	c := config.Default().Simulation
	c.Seed = 7.25
	c.ExplosionOrigin = [3]float32{1, -2, 3}

	got := FromConfig(c).ToConfig(true)
	c.Stopped = true
	assert.Equal(t, c, got)
}

func TestNewStoreStagedEqualsLive(t *testing.T) {
	s := NewStore(testParams(), testModel())

	assert.Equal(t, s.Live(), *s.Staged())
	assert.Equal(t, s.LiveModel(), *s.StagedModel())
	assert.False(t, s.ModelChanged())
}

func TestStagedEditsDoNotAffectLive(t *testing.T) {
	s := NewStore(testParams(), testModel())

	s.Staged().Magnitude = 5
	s.Staged().ExplosionOrigin = mgl32.Vec3{1, 2, 3}

	assert.Equal(t, float32(2), s.Live().Magnitude)
	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, s.Live().ExplosionOrigin)
}

func TestCommitCopiesStaged(t *testing.T) {
	s := NewStore(testParams(), testModel())
	r := &fakeReloader{}

	s.Staged().Magnitude = 5
	s.Staged().FalloffRadius = -1 // not validated

	require.NoError(t, s.Commit(r))
	assert.Equal(t, float32(5), s.Live().Magnitude)
	assert.Equal(t, float32(-1), s.Live().FalloffRadius)
	assert.Empty(t, r.calls, "unchanged model must not be reloaded")
}

func TestCommitReloadsChangedModel(t *testing.T) {
	s := NewStore(testParams(), testModel())
	r := &fakeReloader{}

	next := ModelSource{Path: "resources/models/car.obj", Format: "T2F_N3F_V3F"}
	*s.StagedModel() = next
	assert.True(t, s.ModelChanged())

	require.NoError(t, s.Commit(r))
	require.Len(t, r.calls, 1)
	assert.Equal(t, next, r.calls[0])
	assert.Equal(t, next, s.LiveModel())
	assert.False(t, s.ModelChanged())
}

func TestCommitFailureLeavesLiveUnchanged(t *testing.T) {
	s := NewStore(testParams(), testModel())
	loadErr := errors.New("open resources/models/missing.obj: no such file")
	r := &fakeReloader{err: loadErr}

	before := s.Live()
	s.Staged().Magnitude = 9
	s.StagedModel().Path = "resources/models/missing.obj"

	err := s.Commit(r)
	require.Error(t, err)

	var resErr *ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "resources/models/missing.obj", resErr.Model.Path)
	assert.ErrorIs(t, err, loadErr)

	assert.Equal(t, before, s.Live())
	assert.Equal(t, testModel(), s.LiveModel())
	// staged edits survive so the user can fix the path
	assert.Equal(t, float32(9), s.Staged().Magnitude)
}

func TestCommitWithoutReloaderFailsOnModelChange(t *testing.T) {
	s := NewStore(testParams(), testModel())
	s.StagedModel().Format = "V3F"

	err := s.Commit(nil)
	var resErr *ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, testModel(), s.LiveModel())
}

func TestReseedDrawsSeedInRange(t *testing.T) {
	s := NewStore(testParams(), testModel(), WithRand(rand.New(rand.NewPCG(1, 2))))

	seen := map[float32]bool{}
	for i := 0; i < 50; i++ {
		require.NoError(t, s.Reseed(nil))
		seed := s.Live().Seed
		assert.GreaterOrEqual(t, seed, float32(0))
		assert.Less(t, seed, float32(100))
		assert.Equal(t, seed, s.Staged().Seed)
		seen[seed] = true
	}
	assert.Greater(t, len(seen), 1, "reseed should vary the seed")
}

func TestReseedIsDeterministicWithSameSource(t *testing.T) {
	a := NewStore(testParams(), testModel(), WithRand(rand.New(rand.NewPCG(7, 7))))
	b := NewStore(testParams(), testModel(), WithRand(rand.New(rand.NewPCG(7, 7))))

	require.NoError(t, a.Reseed(nil))
	require.NoError(t, b.Reseed(nil))
	assert.Equal(t, a.Live().Seed, b.Live().Seed)
}

func TestReseedFailureKeepsLiveSeed(t *testing.T) {
	s := NewStore(testParams(), testModel(), WithRand(rand.New(rand.NewPCG(3, 4))))
	s.StagedModel().Path = "nope.obj"

	err := s.Reseed(&fakeReloader{err: errors.New("boom")})
	require.Error(t, err)
	assert.Equal(t, float32(0), s.Live().Seed)
}

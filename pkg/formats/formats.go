// Package formats parses the Wavefront OBJ and MTL files used for scene
// meshes and their materials.
//
// Only the subset needed for rendering lit triangle meshes is understood:
// positions, normals, texture coordinates, faces of any arity, material
// libraries and per-face material selection. Everything else is ignored.
package formats

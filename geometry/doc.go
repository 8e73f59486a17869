// Package geometry compiles a surface history into drawable geometry.
//
// The Compiler walks the display list of one surface in order, tracking the
// current path position and pen, and produces a Geometry: stroke segments
// tagged with the pen active when they were drawn and the log index that
// produced them, plus closed fill polygons. Compilation is a pure function
// of the history snapshot and never fails; text and image descriptors are
// only measured, never validated.
//
// Tessellating segments into triangles and rasterizing them is left to the
// backend that receives the geometry.
package geometry

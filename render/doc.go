// @focus: #render { buffer }
// Package render holds the cell buffers the engine paints into and the
// primitives used to paint them: clipped regions, borders, shaped text,
// opacity blending and front/back diffing.
package render

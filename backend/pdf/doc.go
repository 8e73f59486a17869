// Package pdf writes kale frames as vector PDF pages with gofpdf.
//
// Each frame becomes one page of Width x Height points. Encode writes the
// document and starts a new one for the next frame. The output registers
// as "pdf" in the backend registry.
package pdf

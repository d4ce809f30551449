// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package intentionally does not implement FFT itself. It operates on
// the real/imaginary parts produced by an external FFT backend and exposes
// the vecmath-backed power computation the noise-reduction pipeline needs
// on its per-frame hot path.
package spectrum

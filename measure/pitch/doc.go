// Package pitch estimates the fundamental frequency of rendered audio.
//
// [Analyze] picks the strongest spectral peak of a windowed FFT and refines
// it by quadratic interpolation of the log magnitudes. [PeriodFromCrossings]
// and [PeriodFromWraps] work in the time domain and suit short buffers
// where the FFT resolution is too coarse.
package pitch

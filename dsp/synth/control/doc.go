// Package control holds the synth's user-facing parameters.
//
// [Params] is a plain value: the audio path loads one snapshot per buffer
// and never sees a half-applied change. [Store] publishes snapshots
// lock-free so control threads (UI, keyboard, file watcher, scripts) can
// update parameters while the audio callback runs.
package control

package fir

// MaxTaps is the hard ceiling on filter length. Coefficient sets longer than
// this are rejected at construction time.
const MaxTaps = 128

// mirrorFactor is the storage multiplier of the delay line: every sample is
// written twice so the newest N samples are always contiguous.
const mirrorFactor = 2

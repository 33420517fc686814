package main

// Default command-line flag values
const (
	defaultSampleRate = 8000.0 // Narrowband test rate
	defaultSamples    = 4096   // Test signal length
)

// Test signal parameters
const (
	testSignalFrequency = 440.0 // A4 test tone
	testSignalAmplitude = 0.5
	clickAmplitude      = 0.9
	clickInterval       = 1024 // Samples between injected clicks
)

// Transient detector parameters
const (
	// Kurtosis of a sinusoid is 1.5; isolated impulses drive it far above.
	kurtosisThreshold = 6.0
	detectorOutputs   = 1
	detectorInputs    = 1
)

// Package download implements the simulated download pipeline. A Service walks
// the current playlist one video at a time, waits out a random transfer delay,
// runs the local save action and reports every transition on a Bus. A Session
// ties the synthesizer and the pipeline together for one user.
package download

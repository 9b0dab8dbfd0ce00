// Package train provides the SpikeTrain data type shared by all
// analysis packages: an immutable, ordered sequence of spike times
// for a single unit, with its mean firing rate derived at
// construction time.
package train

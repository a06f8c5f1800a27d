// Package analysis inspects metric series recorded by a simulation run.
//
// A swarm released with too little spin falls inward, overshoots and
// expands again, so its mean radius oscillates. [DominantPeriod] finds that
// breathing period from the sampled series:
//
//	period := analysis.DominantPeriod(result.Series["mean_radius"], interval)
package analysis

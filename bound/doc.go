// Package bound derives error statistics and upper bounds from paired
// (exact, approx) observations.
//
// The pipeline is a single pass:
//
//	obs, err := dataset.Load(paths)
//	errs := bound.ComputeErrors(obs)
//	report, err := bound.ComputeBounds(errs, bound.WithConfidence(0.95))
//	bound.Report(os.Stdout, report)
//	charts, err := bound.BuildCharts(obs, errs, report, 0)
//
// ComputeBounds may return a usable report together with a
// *errors.NoValidRelativeErrorError when no observation has a defined
// relative error; every absolute-error statistic in that report is valid.
//
// Two of the reported bounds are easy to misread. MeanUpperBound is the upper
// end of a Student-t confidence interval for the mean absolute error; it says
// nothing about individual errors. ThreeSigma assumes normally distributed
// errors, which approximation errors rarely are; the Q-Q diagnostic produced
// by NormalProbability shows how far that assumption is off.
package bound

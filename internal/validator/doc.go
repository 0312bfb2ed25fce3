// Package validator collects and reports rig.json validation results.
//
// A [Result] gathers [Issue] values of differing [Severity] for one file, and
// a [Reporter] prints one or more results as text or JSON:
//
//	result := &validator.Result{Path: path}
//	result.AddError("rigPackageName", "must end with \"-rig\"", name)
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
package validator

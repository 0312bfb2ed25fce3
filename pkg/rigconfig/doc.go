// Package rigconfig loads config/rig.json and resolves the rig profile it
// selects.
//
// A rig package is an installed npm-style package whose "profiles" folder
// holds named sets of shared configuration files. A project opts in with:
//
//	// config/rig.json
//	{
//	  "$schema": "https://developer.microsoft.com/json-schemas/rig-package/rig.schema.json",
//	  "rigPackageName": "@acme/node-rig",
//	  "rigProfile": "library"
//	}
//
// # Loading
//
// [LoadForProjectFolder] reads and validates the file. A missing file is not
// an error; the returned [RigConfig] reports Found() == false:
//
//	cfg, err := rigconfig.LoadForProjectFolder(rigconfig.LoadOptions{
//		ProjectFolderPath: dir,
//	})
//	if err != nil {
//		return err
//	}
//	if !cfg.Found() {
//		return nil
//	}
//
// Failures are wrapped in a [LoadError] naming the file, and match one of
// the sentinel errors such as [ErrMissingRigSuffix] via errors.Is.
//
// # Resolving
//
// [RigConfig.GetResolvedProfileFolder] finds "<rigPackageName>/package.json"
// by walking node_modules folders upward from the project folder, then checks
// that "profiles/<rigProfile>" exists inside the package. The result is
// cached on the RigConfig.
//
// Every blocking operation has an Async form that returns a channel
// delivering exactly one result.
package rigconfig

package steps

// PlanOptions selects the optional steps and the external commands.
type PlanOptions struct {
	SkipBuild       bool
	BuildCommand    []string
	ActivateCommand []string
}

// Plan returns the ejection steps in execution order.
func Plan(opts PlanOptions) []Step {
	plan := []Step{
		NewSetupStep(),
		NewPermissionsStep(),
	}

	if !opts.SkipBuild {
		plan = append(plan, NewBuildStep(opts.BuildCommand))
	}

	return append(plan,
		NewVerifyAssetsStep(),
		NewVerifyManifestStep(),
		NewCheckWebpackManifestStep(),
		NewCreateDirectoryStep(),
		NewGenerateLoaderStep(),
		NewEjectAssetsStep(),
		NewEjectManifestStep(),
		NewEjectWebpackManifestStep(),
		NewActivateStep(opts.ActivateCommand),
	)
}

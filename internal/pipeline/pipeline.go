package pipeline

import "context"

// Pipeline runs the three stages strictly in order. The first error
// aborts the run; later stages are never attempted.
type Pipeline struct {
	builder   Builder
	bundler   Bundler
	installer Installer
}

// New creates a pipeline from the three stage implementations.
func New(builder Builder, bundler Bundler, installer Installer) *Pipeline {
	return &Pipeline{
		builder:   builder,
		bundler:   bundler,
		installer: installer,
	}
}

// RunSpec describes one pipeline run. A nil Install skips the install
// stage (bundle-only builds).
type RunSpec struct {
	Build       BuildSpec
	ProductName string
	Install     *InstallTarget
}

// Result carries the intermediate values of a successful run.
type Result struct {
	Artifact  Artifact
	Bundle    Bundle
	Installed bool
}

// Run executes build, bundle and (optionally) install sequentially.
// Each stage consumes only the previous stage's output.
func (p *Pipeline) Run(ctx context.Context, spec RunSpec) (*Result, error) {
	artifact, err := p.builder.Build(ctx, spec.Build)
	if err != nil {
		return nil, err
	}

	bundle, err := p.bundler.Bundle(ctx, BundleSpec{
		Artifact:    artifact,
		ProductName: spec.ProductName,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Artifact: artifact, Bundle: bundle}

	if spec.Install == nil {
		return result, nil
	}

	if err := p.installer.Install(ctx, bundle, *spec.Install); err != nil {
		return nil, err
	}
	result.Installed = true

	return result, nil
}

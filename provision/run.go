package provision

import "context"

// Plan is what a Run provisions.
type Plan struct {
	Bucket  string
	Region  string
	Folders []string
}

// Run ensures the bucket and then seeds the folders. Seeding is attempted
// even if bucket creation failed; the report shows both outcomes.
func (p *Provisioner) Run(ctx context.Context, plan Plan) Report {
	rep := Report{
		Bucket: p.EnsureBucket(ctx, plan.Bucket, plan.Region),
	}
	rep.Seed = p.SeedFolders(ctx, plan.Bucket, plan.Folders)
	p.metrics.observeRun(rep.OK())
	return rep
}

package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/icongen/manifest"
	"github.com/adnsv/icongen/raster"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	PlatformsDir = "platforms"
	DirPerm      = 0755
)

type Job struct {
	Platform    string
	Spec        *manifest.PlatformSpec
	ProjectName string
	WorkDir     string
	Source      raster.Source
	Jobs        int // concurrent icons, runtime.NumCPU() when <= 0
}

type Result struct {
	Path      string
	Dimension int
	Err       error
}

type Report struct {
	Root    string
	Results []Result // in manifest order
}

func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Err joins every per-icon failure, nil when all icons were written.
func (r *Report) Err() error {
	errs := []error{}
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// OutputRoot returns <workdir>/platforms/<platform>/<resolved root template>.
func OutputRoot(workDir, platform string, spec *manifest.PlatformSpec, projectName string) (string, error) {
	root, err := spec.ResolveRoot(map[string]string{
		manifest.VarAppName:  projectName,
		manifest.VarPlatform: platform,
	})
	if err != nil {
		return "", err
	}
	return filepath.Join(workDir, PlatformsDir, platform, root), nil
}

// Generate writes every icon of the platform spec. Icons are processed
// concurrently and independently: a failing icon does not stop its siblings,
// and the returned error joins all failures. Entries that have not started
// yet are skipped once ctx is done.
func Generate(ctx context.Context, job Job) (*Report, error) {
	root, err := OutputRoot(job.WorkDir, job.Platform, job.Spec, job.ProjectName)
	if err != nil {
		return nil, err
	}
	log.Info().Msgf("generating %d icon(s) for %s in %s", len(job.Spec.Icons), job.Platform, root)

	report := &Report{Root: root, Results: make([]Result, len(job.Spec.Icons))}

	limit := job.Jobs
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g := errgroup.Group{}
	g.SetLimit(limit)

	for i, ic := range job.Spec.Icons {
		dst := filepath.Join(root, ic.File)
		report.Results[i] = Result{Path: dst, Dimension: ic.Dimension}
		res := &report.Results[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.Err = fmt.Errorf("%s: %w", dst, err)
				return res.Err
			}
			res.Err = writeIcon(job.Source, dst, ic.Dimension)
			if res.Err != nil {
				log.Error().Err(res.Err).Msgf("failed to generate %s", dst)
			}
			return res.Err
		})
	}
	g.Wait()

	if n := report.Failed(); n > 0 {
		log.Warn().Msgf("%d of %d icon(s) failed", n, len(report.Results))
	}
	return report, report.Err()
}

func writeIcon(src raster.Source, dst string, dim int) error {
	if src == nil {
		return fmt.Errorf("%s: no source icon", dst)
	}
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return err
	}
	img, err := src.Render(dim, dim)
	if err != nil {
		return fmt.Errorf("%s: %w", dst, err)
	}
	buf, err := raster.EncodeFor(dst, img)
	if err != nil {
		return fmt.Errorf("%s: %w", dst, err)
	}
	log.Debug().Msgf("writing %s (%dx%d)", dst, dim, dim)
	return fs.WriteFileIfChanged(dst, buf)
}

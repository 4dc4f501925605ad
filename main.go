package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/icongen/hook"
	"github.com/adnsv/icongen/raster"
	cli "github.com/jawher/mow.cli"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func setupLogging(verbose bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func main() {
	setupLogging(false)

	e, err := hook.ParseEnv()
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	layout := hook.Layout{}
	if dir, err := hook.InstallDir(); err == nil {
		layout = hook.DefaultLayout(dir)
	}
	// the bundled manifest is used unless platforms.json sits next to the hook
	if !fs.FileExists(layout.ManifestFN) {
		layout.ManifestFN = ""
	}

	os.Exit(run(os.Args, e, layout))
}

// run executes the command line and returns the process exit status.
// Cordova invokes hooks with the project root as the only argument.
func run(args []string, e hook.Env, layout hook.Layout) int {
	status := exitOK

	platform := e.Platform
	manifestFN := layout.ManifestFN
	filter := e.Filter
	jobs := e.Jobs
	strict := false
	verbose := false
	projectRoot := ""

	var workdirSet, configSet, sourceSet bool

	app := cli.App("icongen", "Cordova before_build hook: generates platform icons from a single source image")
	app.ErrorHandling = flag.ContinueOnError
	app.Version("version", "icongen "+app_version())
	app.BoolOptPtr(&verbose, "v verbose", false, "log every written file")
	app.StringOptPtr(&manifestFN, "m manifest", manifestFN, "platform manifest (json), the bundled one is used when empty")

	app.Command("list", "list the platforms defined in the manifest", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			setupLogging(verbose)
			m, err := hook.LoadManifest(manifestFN)
			if err != nil {
				log.Error().Err(err).Send()
				status = exitFatal
				return
			}
			for _, id := range m.Platforms() {
				p, _ := m.Lookup(id)
				vars := ""
				if ph := p.Placeholders(); len(ph) > 0 {
					vars = " {" + strings.Join(ph, "}, {") + "}"
				}
				fmt.Printf("%-10s %2d icon(s) -> platforms/%s/%s%s\n", id, len(p.Icons), id, p.Root, vars)
			}
		}
	})

	app.Spec = "[OPTIONS] [PROJECT_ROOT]"
	app.StringOptPtr(&platform, "p platform", platform, "target platform (defaults to $CORDOVA_PLATFORMS)")
	workdir := app.String(cli.StringOpt{
		Name:      "w workdir",
		Value:     e.WorkDir,
		Desc:      "cordova project directory (defaults to $PWD, then PROJECT_ROOT)",
		SetByUser: &workdirSet,
	})
	configFN := app.String(cli.StringOpt{
		Name:      "c config",
		Value:     layout.ConfigFN,
		Desc:      "config.xml holding the project name",
		SetByUser: &configSet,
	})
	sourceFN := app.String(cli.StringOpt{
		Name:      "s source",
		Value:     layout.SourceFN,
		Desc:      "canonical source icon (png, jpeg, gif, bmp, tiff, webp or svg)",
		SetByUser: &sourceSet,
	})
	app.StringOptPtr(&filter, "f filter", filter, "resampling filter: catmullrom, bilinear, approx, nearest")
	app.IntOptPtr(&jobs, "j jobs", jobs, "icons generated concurrently (0: one per cpu)")
	app.BoolOptPtr(&strict, "strict", false, "exit with an error when any icon fails to generate")
	app.StringArgPtr(&projectRoot, "PROJECT_ROOT", "", "cordova project root, as passed to hooks")

	app.Action = func() {
		setupLogging(verbose)

		if projectRoot != "" {
			l := hook.ProjectLayout(projectRoot)
			if !configSet {
				*configFN = l.ConfigFN
			}
			if !sourceSet {
				*sourceFN = l.SourceFN
			}
		}
		if !workdirSet && *workdir == "" {
			*workdir = projectRoot
		}
		if *workdir == "" {
			wd, err := os.Getwd()
			if err != nil {
				log.Error().Err(err).Msg("cannot determine the working directory")
				status = exitFatal
				return
			}
			*workdir = wd
		}

		f, err := raster.ParseFilter(filter)
		if err != nil {
			log.Error().Err(err).Send()
			status = exitFatal
			return
		}

		out, err := hook.Run(context.Background(), hook.Config{
			Platform:   platform,
			WorkDir:    filepath.Clean(*workdir),
			ManifestFN: manifestFN,
			ConfigFN:   *configFN,
			SourceFN:   *sourceFN,
			Filter:     f,
			Jobs:       jobs,
		})
		if err != nil {
			log.Error().Err(err).Msg("icon generation aborted")
			status = exitFatal
			return
		}

		// icon failures are logged but do not fail the build unless asked to
		if out.GenErr != nil {
			if strict {
				log.Error().Err(out.GenErr).Msg("icon generation failed")
				status = exitFatal
				return
			}
			log.Warn().Msg("some icons were not generated")
			return
		}
		if !out.Skipped {
			log.Info().Msg("mission accomplished")
		}
	}

	if err := app.Run(args); err != nil {
		return exitUsage
	}
	return status
}

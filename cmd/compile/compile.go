/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package compile provides the compile command for typings.
package compile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"typings.dev/typings/compiler"
	"typings.dev/typings/fetchcache"
	"typings.dev/typings/fs"
	"typings.dev/typings/internal/version"
)

// Cmd is the compile command.
var Cmd = &cobra.Command{
	Use:   "compile",
	Short: "Resolve a project's dependency tree and compile its typings",
	Long: `Resolve a project's native/npm/bower dependency tree and compile it into
a single pair of {main, browser} ambient declaration files, with every
dependency addressable under a namespace derived from its position in the
tree.`,
	Example: `  # Compile the project in the current directory
  typings compile

  # Write to explicit files instead of stdout
  typings compile --output-main typings/index.d.ts --output-browser typings/browser.d.ts

  # Compile every project matching a glob, in parallel
  typings compile --glob "packages/*" -j 4`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("name", "", "Project name (default: the resolved tree's own name)")
	Cmd.Flags().Bool("dev", false, "Include devDependencies at the root")
	Cmd.Flags().Bool("ambient", false, "Include ambientDependencies at the root")
	Cmd.Flags().Bool("meta", false, "Precede each emitted block with a generator header comment")
	Cmd.Flags().String("output-main", "", "File to write the main output to (default: stdout)")
	Cmd.Flags().String("output-browser", "", "File to write the browser output to")
	Cmd.Flags().String("glob", "", "Glob pattern of project directories to compile in batch")
	Cmd.Flags().IntP("jobs", "j", 0, "Number of parallel workers in --glob mode (default: number of CPUs)")
	Cmd.Flags().String("proxy", "", "HTTP proxy URL for remote dependency fetches")
	Cmd.Flags().String("cache-dir", "", "HTTP cache directory (default: a temp directory)")

	_ = viper.BindPFlag("name", Cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("dev", Cmd.Flags().Lookup("dev"))
	_ = viper.BindPFlag("ambient", Cmd.Flags().Lookup("ambient"))
	_ = viper.BindPFlag("meta", Cmd.Flags().Lookup("meta"))
	_ = viper.BindPFlag("proxy", Cmd.Flags().Lookup("proxy"))
	_ = viper.BindPFlag("cache-dir", Cmd.Flags().Lookup("cache-dir"))
}

func run(cmd *cobra.Command, args []string) error {
	// cmd/resolve binds the same viper keys at init; rebind to this
	// command's own flags so whichever init ran last does not win.
	_ = viper.BindPFlags(cmd.Flags())
	osfs := fs.NewOSFileSystem()

	globPattern, _ := cmd.Flags().GetString("glob")
	if globPattern == "" {
		absRoot, err := filepath.Abs(viper.GetString("package"))
		if err != nil {
			return fmt.Errorf("invalid package directory: %w", err)
		}
		return compileOne(cmd, osfs, absRoot)
	}

	matches, err := doublestar.FilepathGlob(globPattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no directories matched the glob pattern")
		return nil
	}

	parallel, _ := cmd.Flags().GetInt("jobs")
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(parallel)
	for _, match := range matches {
		match := match
		g.Go(func() error {
			absRoot, err := filepath.Abs(match)
			if err != nil {
				return fmt.Errorf("invalid project directory %q: %w", match, err)
			}
			if err := compileDir(gctx, osfs, cmd, absRoot, absRoot+".d.ts", absRoot+".browser.d.ts"); err != nil {
				return fmt.Errorf("%s: %w", match, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func compileOne(cmd *cobra.Command, osfs fs.FileSystem, absRoot string) error {
	outputMain, _ := cmd.Flags().GetString("output-main")
	outputBrowser, _ := cmd.Flags().GetString("output-browser")
	if outputMain == "" {
		if o := viper.GetString("output"); o != "" {
			outputMain = o
		}
	}
	return compileDir(cmd.Context(), osfs, cmd, absRoot, outputMain, outputBrowser)
}

func compileDir(ctx context.Context, osfs fs.FileSystem, cmd *cobra.Command, absRoot, outputMain, outputBrowser string) error {
	fetcher, err := fetchcache.New(osfs, fetchcache.Options{
		ProxyURL: viper.GetString("proxy"),
		CacheDir: viper.GetString("cache-dir"),
	})
	if err != nil {
		return err
	}

	result, err := compiler.Compile(ctx, compiler.Options{
		Cwd:             absRoot,
		Dev:             viper.GetBool("dev"),
		Ambient:         viper.GetBool("ambient"),
		FS:              osfs,
		Fetcher:         fetcher,
		Name:            viper.GetString("name"),
		Meta:            viper.GetBool("meta"),
		CompilerVersion: version.GetVersion(),
	})
	if err != nil {
		return fmt.Errorf("compiling %s: %w", absRoot, err)
	}

	if outputMain == "" {
		fmt.Print(result.Main)
	} else if err := osfs.WriteFile(outputMain, []byte(result.Main), 0o644); err != nil {
		return fmt.Errorf("writing main output: %w", err)
	}

	if outputBrowser != "" {
		if err := osfs.WriteFile(outputBrowser, []byte(result.Browser), 0o644); err != nil {
			return fmt.Errorf("writing browser output: %w", err)
		}
	}
	return nil
}

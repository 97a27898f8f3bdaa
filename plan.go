// plan.go: Build plan derived from the resolved build arguments
//
// The plan names the cmake generator, the build directories, the initial
// cache script and the cmake command lines. It never runs them.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/agilira/go-errors"
)

// Supported target platforms, in runtime.GOOS form.
const (
	PlatformWindows = "windows"
	PlatformLinux   = "linux"
	PlatformDarwin  = "darwin"
)

// CacheFileName is the cmake initial cache script written in the build directory.
const CacheFileName = "cmake_initial_cache.cmake"

var defaultGenerators = map[string]string{
	PlatformWindows: GeneratorMSVC15,
	PlatformLinux:   GeneratorMakefile,
	PlatformDarwin:  GeneratorMakefile,
}

var msvcGenerators = map[string]string{
	GeneratorMSVC14: "Visual Studio 14 2015",
	GeneratorMSVC15: "Visual Studio 15 2017",
}

// BuildPlan describes the cmake invocations of one build command.
type BuildPlan struct {
	Args           BuildArgs
	Platform       string
	Generator      string
	CMakeGenerator string
	WorkspaceRoot  string
	BuildDir       string
	AppBuildDir    string
	LibBuildDir    string
	TestsBuildDir  string
	CachePath      string
	// CPUCount is the parallelism passed to make on linux.
	CPUCount int
}

// NewBuildPlan resolves the generator for the target platform and lays out
// the build directories under the workspace root.
func NewBuildPlan(settings Settings, args BuildArgs) (*BuildPlan, error) {
	s := settings.WithDefaults()

	platform := strings.ToLower(s.Platform)
	defaultGenerator, ok := defaultGenerators[platform]
	if !ok {
		return nil, errors.New(ErrCodeUnsupportedPlatform,
			fmt.Sprintf("The platform %s is not supported by the builder", s.Platform)).
			WithContext("platform", s.Platform)
	}
	generator := withDefault(args.Generator, defaultGenerator)

	cmakeGenerator, err := cmakeGeneratorFor(platform, generator, s.Arch64)
	if err != nil {
		return nil, err
	}

	buildDir := filepath.Join(s.WorkspaceRoot, "build")
	return &BuildPlan{
		Args:           args,
		Platform:       platform,
		Generator:      generator,
		CMakeGenerator: cmakeGenerator,
		WorkspaceRoot:  s.WorkspaceRoot,
		BuildDir:       buildDir,
		AppBuildDir:    filepath.Join(buildDir, "app"),
		LibBuildDir:    filepath.Join(buildDir, "lib"),
		TestsBuildDir:  filepath.Join(buildDir, "tests"),
		CachePath:      filepath.Join(buildDir, CacheFileName),
		CPUCount:       runtime.NumCPU(),
	}, nil
}

func cmakeGeneratorFor(platform, generator string, arch64 bool) (string, error) {
	isMSVC := strings.HasPrefix(generator, "msvc")
	if platform == PlatformWindows && !isMSVC {
		if generator == GeneratorMakefile {
			return "", errors.New(ErrCodeUnsupportedGenerator, "makefile is not supported for windows.").
				WithContext("generator", generator)
		}
		return "", errors.New(ErrCodeUnsupportedGenerator, "For now only msvc generator are supported on Windows.").
			WithContext("generator", generator)
	}

	if generator == GeneratorMakefile {
		return "Unix Makefiles", nil
	}

	name, ok := msvcGenerators[generator]
	if !ok {
		return "", errors.New(ErrCodeUnsupportedGenerator, fmt.Sprintf("unsupported generator %s.", generator)).
			WithContext("generator", generator)
	}
	if arch64 {
		name += " Win64"
	}
	return name, nil
}

// IsMSVC reports whether the plan targets a Visual Studio generator.
func (p *BuildPlan) IsMSVC() bool {
	return strings.HasPrefix(p.Generator, "msvc")
}

// CapitalizedConfig returns "Debug" or "Release".
func (p *BuildPlan) CapitalizedConfig() string {
	config := strings.ToLower(p.Args.Config)
	if config == "" {
		return ""
	}
	return strings.ToUpper(config[:1]) + config[1:]
}

// CacheScript returns the cmake initial cache script for the plan.
func (p *BuildPlan) CacheScript() string {
	var b strings.Builder
	b.WriteString("# CMake Initial Cache File\n# Auto Generated, no to be edited manually\n")

	b.WriteString("\n# CMake Global Properties\n")
	b.WriteString(cacheString("CMAKE_INSTALL_PREFIX", filepath.ToSlash(p.WorkspaceRoot)))
	b.WriteString(cacheString("CMAKE_CONFIGURATION_TYPES", "debug;release"))
	if p.Generator == GeneratorMakefile {
		b.WriteString(cacheString("CMAKE_BUILD_TYPE", p.CapitalizedConfig()))
		b.WriteString(cacheBool("CMAKE_RULE_MESSAGES", p.Args.Verbose))
	}
	if p.Platform == PlatformDarwin {
		b.WriteString(cacheString("CMAKE_OSX_ARCHITECTURES", "x86_64"))
	}
	if p.Generator == GeneratorMSVC14 {
		// VC14 targets the Windows 10 SDK
		b.WriteString(cacheString("CMAKE_SYSTEM_VERSION", "10.0"))
	}

	b.WriteString("\n# Build Properties\n")
	b.WriteString(cacheString("APP_NAME", p.Args.AppName))
	b.WriteString(cacheString("LIB_NAME", p.Args.LibName))
	b.WriteString(cacheString("TESTS_NAME", p.Args.UnitTestsName))
	b.WriteString(cacheBool("APP_USE_DEBUG_INFO", !p.Args.NoDebug))

	return b.String()
}

func cacheString(name, value string) string {
	return fmt.Sprintf("set(%s \"%s\" CACHE STRING \"\" FORCE)\n", name, value)
}

func cacheBool(name string, value bool) string {
	state := "OFF"
	if value {
		state = "ON"
	}
	return fmt.Sprintf("set(%s \"%s\" CACHE BOOL \"\" FORCE)\n", name, state)
}

// GenerateCommand returns the cmake project generation command line,
// run from BuildDir.
func (p *BuildPlan) GenerateCommand() []string {
	return []string{"cmake", "-G", p.CMakeGenerator, "-C", p.CachePath, p.WorkspaceRoot}
}

// BuildCommand returns the cmake build command line, run from BuildDir.
// Tokens after the escape marker are forwarded to the native build tool.
func (p *BuildPlan) BuildCommand() []string {
	cmd := []string{"cmake", "--build", ".", "--config", p.CapitalizedConfig()}
	if p.Platform == PlatformWindows && p.IsMSVC() {
		cmd = append(cmd, "--target", "ALL_BUILD")
	} else {
		cmd = append(cmd, "--target", "install")
	}

	cmd = append(cmd, "--")
	switch p.Platform {
	case PlatformWindows:
		cmd = append(cmd, "/nologo")
		if p.IsMSVC() {
			verbosity := "quiet"
			if p.Args.Verbose {
				verbosity = "minimal"
			}
			cmd = append(cmd, "/p:WarningLevel=0", "/maxcpucount", "/nr:false", "/verbosity:"+verbosity)
		}
	case PlatformLinux:
		if p.Generator == GeneratorMakefile {
			cmd = append(cmd, "-j", fmt.Sprintf("%d", p.CPUCount))
			if !p.Args.Verbose {
				cmd = append(cmd, "-s")
			}
		}
	}

	return append(cmd, p.Args.NativeArgs()...)
}

// StepKind identifies a build plan step.
type StepKind string

// Build plan steps, in execution order.
const (
	StepClean    StepKind = "clean"
	StepGenerate StepKind = "generate"
	StepBuild    StepKind = "build"
)

// Step is one action of the plan. Command is empty for StepClean.
type Step struct {
	Kind    StepKind
	Dir     string
	Command []string
}

// Steps lists the actions the build command would take.
func (p *BuildPlan) Steps() []Step {
	var steps []Step
	if p.Args.Clean {
		steps = append(steps, Step{Kind: StepClean, Dir: p.BuildDir})
	}
	if !p.Args.NoGenerate {
		steps = append(steps, Step{Kind: StepGenerate, Dir: p.BuildDir, Command: p.GenerateCommand()})
	}
	if !p.Args.NoBuild {
		steps = append(steps, Step{Kind: StepBuild, Dir: p.BuildDir, Command: p.BuildCommand()})
	}
	return steps
}

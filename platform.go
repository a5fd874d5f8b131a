package jsbld

import "runtime"

// OS name constants matching runtime.GOOS values.
const (
	Darwin  = "darwin"
	Linux   = "linux"
	Windows = "windows"
)

// Architecture constants in various naming conventions.
const (
	// Go-style architecture names (matching runtime.GOARCH).
	AMD64 = "amd64"
	ARM64 = "arm64"
	I386  = "386"

	// Node-style names (process.arch / process.platform).
	X64   = "x64"
	IA32  = "ia32"
	Win32 = "win32"
)

// HostOS returns the current operating system (runtime.GOOS).
func HostOS() string {
	return runtime.GOOS
}

// HostArch returns the current architecture (runtime.GOARCH).
func HostArch() string {
	return runtime.GOARCH
}

// OSToNode converts a Go OS name to the name Node reports as process.platform.
//
//	windows -> win32
//
// Other values are returned unchanged.
func OSToNode(os string) string {
	if os == Windows {
		return Win32
	}
	return os
}

// ArchToNode converts a Go architecture name to the name Node reports as process.arch.
//
//	amd64 -> x64
//	386 -> ia32
//	arm64 -> arm64 (unchanged)
//
// Other values are returned unchanged.
func ArchToNode(arch string) string {
	switch arch {
	case AMD64:
		return X64
	case I386:
		return IA32
	default:
		return arch
	}
}

package toolchain

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrorTranslator converts cargo errors to user-friendly messages.
type ErrorTranslator struct{}

// NewErrorTranslator creates a new error translator.
func NewErrorTranslator() *ErrorTranslator {
	return &ErrorTranslator{}
}

// Translate converts cargo output to a one-line hint where a known
// pattern matches, otherwise returns the cleaned text.
func (t *ErrorTranslator) Translate(cargoError string) string {
	// Unknown package in the workspace
	if strings.Contains(cargoError, "did not match any packages") {
		return t.translateUnknownPackage(cargoError)
	}

	// Profile not declared in Cargo.toml
	if strings.Contains(cargoError, "profile") && strings.Contains(cargoError, "is not defined") {
		return t.translateUnknownProfile(cargoError)
	}

	// Compilation error
	if strings.Contains(cargoError, "error[E") || strings.Contains(cargoError, "could not compile") {
		return t.translateCompileError(cargoError)
	}

	// Linker failure
	if strings.Contains(cargoError, "linking with") {
		return "Linking failed. Check that a C toolchain (cc/clang) is installed."
	}

	return t.cleanError(cargoError)
}

// translateUnknownPackage converts package-spec mismatch errors.
func (t *ErrorTranslator) translateUnknownPackage(err string) string {
	re := regexp.MustCompile("package ID specification `([^`]+)`")
	if matches := re.FindStringSubmatch(err); len(matches) > 1 {
		return fmt.Sprintf("Package '%s' not found in the workspace. Check --target against the crate names in Cargo.toml.", matches[1])
	}
	return "Target package not found in the workspace. Check --target against Cargo.toml."
}

// translateUnknownProfile converts undefined-profile errors.
func (t *ErrorTranslator) translateUnknownProfile(err string) string {
	re := regexp.MustCompile("profile `([^`]+)` is not defined")
	if matches := re.FindStringSubmatch(err); len(matches) > 1 {
		return fmt.Sprintf("Profile '%s' is not defined. Add a [profile.%s] section to Cargo.toml or use --profile=release.", matches[1], matches[1])
	}
	return "Build profile is not defined in Cargo.toml."
}

// translateCompileError extracts the first compiler diagnostic.
func (t *ErrorTranslator) translateCompileError(err string) string {
	re := regexp.MustCompile(`error\[E\d+\]: [^\n]+`)
	if match := re.FindString(err); match != "" {
		return fmt.Sprintf("Compilation failed:\n  %s", match)
	}
	return fmt.Sprintf("Compilation failed:\n%s", t.cleanError(err))
}

// cleanError removes noise and truncates long output.
func (t *ErrorTranslator) cleanError(err string) string {
	lines := strings.Split(err, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Skip cargo progress chatter
		if strings.HasPrefix(line, "Compiling") || strings.HasPrefix(line, "Downloading") || strings.HasPrefix(line, "Updating") {
			continue
		}
		cleaned = append(cleaned, line)
		if len(cleaned) >= 5 {
			break
		}
	}
	return strings.Join(cleaned, "\n")
}

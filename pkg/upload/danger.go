package upload

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/safeupload/pkg/sanitizer"
)

// dangerousExtensions are executables, installers, scripts, shortcuts and OS packages.
var dangerousExtensions = map[string]struct{}{
	".exe": {}, ".dll": {}, ".com": {}, ".bat": {}, ".cmd": {}, ".msi": {}, ".msp": {},
	".scr": {}, ".pif": {}, ".cpl": {}, ".jar": {},
	".vbs": {}, ".vbe": {}, ".js": {}, ".jse": {}, ".ws": {}, ".wsf": {}, ".wsh": {},
	".ps1": {}, ".psm1": {},
	".sh": {}, ".bash": {}, ".zsh": {}, ".csh": {}, ".ksh": {},
	".py": {}, ".pl": {}, ".rb": {}, ".php": {},
	".lnk": {}, ".url": {}, ".reg": {}, ".hta": {},
	".app": {}, ".deb": {}, ".rpm": {}, ".dmg": {}, ".pkg": {}, ".apk": {}, ".appimage": {},
	".run": {}, ".bin": {}, ".elf": {}, ".so": {}, ".dylib": {},
}

// dangerousTypes are declared content types of executables and scripts.
var dangerousTypes = map[string]struct{}{
	"application/x-msdownload":                      {},
	"application/x-msdos-program":                   {},
	"application/x-executable":                      {},
	"application/x-elf":                             {},
	"application/x-mach-binary":                     {},
	"application/x-sh":                              {},
	"application/x-shellscript":                     {},
	"application/x-csh":                             {},
	"application/x-bat":                             {},
	"application/x-msi":                             {},
	"application/vnd.microsoft.portable-executable": {},
	"application/java-archive":                      {},
	"text/x-shellscript":                            {},
	"text/x-python":                                 {},
	"application/x-python-code":                     {},
	"application/x-perl":                            {},
	"application/x-php":                             {},
	"application/javascript":                        {},
	"text/javascript":                               {},
}

// checkDangerous rejects names or declared types on the denylists.
// It runs whether or not the category has an allow-list.
func checkDangerous(name, declaredType string) error {
	if ext := sanitizer.Extension(name); ext != "" {
		if _, ok := dangerousExtensions[ext]; ok {
			return fmt.Errorf("%w: extension %s", ErrDangerousFileType, ext)
		}
	}
	if mt := mediaType(declaredType); mt != "" {
		if _, ok := dangerousTypes[mt]; ok {
			return fmt.Errorf("%w: declared type %s", ErrDangerousFileType, mt)
		}
	}
	return nil
}

// mediaType strips parameters from a content type and lower-cases it.
func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

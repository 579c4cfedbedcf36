package bundle

import (
	"bytes"
	"strings"
	"text/template"
)

// pkgInfo is the fixed content of Contents/PkgInfo for a loadable bundle.
const pkgInfo = "BNDL????"

// infoPlistTemplate is the metadata file the plugin host reads to locate
// the executable inside the bundle.
const infoPlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleDevelopmentRegion</key>
	<string>English</string>
	<key>CFBundleExecutable</key>
	<string>{{.Product}}</string>
	<key>CFBundleIdentifier</key>
	<string>{{.Identifier}}</string>
	<key>CFBundleInfoDictionaryVersion</key>
	<string>6.0</string>
	<key>CFBundleName</key>
	<string>{{.Product}}</string>
	<key>CFBundlePackageType</key>
	<string>BNDL</string>
	<key>CFBundleSignature</key>
	<string>????</string>
	<key>CFBundleVersion</key>
	<string>{{.Version}}</string>
</dict>
</plist>
`

var plistTmpl = template.Must(template.New("Info.plist").Parse(infoPlistTemplate))

type plistData struct {
	Product    string
	Identifier string
	Version    string
}

// renderInfoPlist renders the Info.plist contents for a bundle.
func renderInfoPlist(data plistData) ([]byte, error) {
	var buf bytes.Buffer
	if err := plistTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sanitizeIdentifier lowercases a product name and strips characters
// that are not valid in a reverse-DNS identifier segment.
func sanitizeIdentifier(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '_':
			sb.WriteRune('-')
		case r == '-':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

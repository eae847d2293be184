package langmap

import "testing"

func TestIsSupportedExtension(t *testing.T) {
	cases := map[string]bool{"rs": true, "py": true, "md": true, "exe": false, "png": false}
	for ext, want := range cases {
		if got := IsSupportedExtension(ext); got != want {
			t.Errorf("IsSupportedExtension(%q) = %v, want %v", ext, got, want)
		}
	}
}

func TestExtToLang(t *testing.T) {
	cases := map[string]string{
		"rs": "rust", "py": "python", "cs": "csharp", "ts": "typescript",
		"md": "markdown", "xyz": "unknown", "pyi": "python", "jsx": "javascript",
	}
	for ext, want := range cases {
		if got := ExtToLang(ext); got != want {
			t.Errorf("ExtToLang(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestDetectUIContext(t *testing.T) {
	cases := map[string]string{
		"src/pages/Home.tsx":          "page",
		"src/components/Button.tsx":   "component",
		"src/screens/Login.tsx":       "screen",
		"src/utils/helper.ts":         "",
		"src/App.tsx":                 "ui",
	}
	for path, want := range cases {
		if got := DetectUIContext(path); got != want {
			t.Errorf("DetectUIContext(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestIsCodeLanguage(t *testing.T) {
	if !IsCodeLanguage("go") {
		t.Error("go should be a code language")
	}
	if IsCodeLanguage("markdown") {
		t.Error("markdown should not be a code language")
	}
}

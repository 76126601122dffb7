package lang

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"en", English, false},
		{"English", English, false},
		{"zh", Chinese, false},
		{"CHINESE", Chinese, false},
		{"zh-CN", Chinese, false},
		{"zh_TW", Chinese, false},
		{"en-GB", English, false},
		{"fr", "", true},
		{"klingon", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		env  []string
		want Language
	}{
		{"empty", nil, English},
		{"lang zh", []string{"LANG=zh_CN.UTF-8"}, Chinese},
		{"lang en", []string{"LANG=en_US.UTF-8"}, English},
		{"lc_all wins", []string{"LANG=en_US.UTF-8", "LC_ALL=zh_TW.UTF-8"}, Chinese},
		{"posix skipped", []string{"LC_ALL=C", "LANG=zh_CN.UTF-8"}, Chinese},
		{"unmatched", []string{"LANG=de_DE.UTF-8"}, English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromEnv(tt.env); got != tt.want {
				t.Errorf("FromEnv(%v) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

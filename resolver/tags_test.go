package resolver

import "testing"

func TestTagVariants(t *testing.T) {
	tests := []struct {
		name     string
		template string
		tag      string
		want     [3]string
	}{
		{
			name:     "tag with v prefix",
			template: "app-{tag}-linux.zip",
			tag:      "v1.2.3",
			want: [3]string{
				"app-v1.2.3-linux.zip",
				"app-1.2.3-linux.zip",
				"app-v1.2.3-linux.zip",
			},
		},
		{
			name:     "tag without v prefix",
			template: "app-{tag}-linux.zip",
			tag:      "1.2.3",
			want: [3]string{
				"app-1.2.3-linux.zip",
				"app-1.2.3-linux.zip",
				"app-v1.2.3-linux.zip",
			},
		},
		{
			name:     "placeholder appears twice",
			template: "{tag}/app-{tag}.tar.gz",
			tag:      "v2.0",
			want: [3]string{
				"v2.0/app-v2.0.tar.gz",
				"2.0/app-2.0.tar.gz",
				"v2.0/app-v2.0.tar.gz",
			},
		},
		{
			name:     "no placeholder",
			template: "app.zip",
			tag:      "v1.0",
			want:     [3]string{"app.zip", "app.zip", "app.zip"},
		},
		{
			name:     "empty tag",
			template: "app-{tag}.zip",
			tag:      "",
			want:     [3]string{"app-.zip", "app-.zip", "app-v.zip"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagVariants(tt.template, tt.tag); got != tt.want {
				t.Errorf("TagVariants() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagVariantsIdempotent(t *testing.T) {
	// A canonical tag renders identically whether given with or without the
	// prefix it already carries.
	first := TagVariants("{tag}", "v1.0.0")
	if first[0] != "v1.0.0" || first[1] != "1.0.0" || first[2] != "v1.0.0" {
		t.Errorf("TagVariants() = %v, want [v1.0.0 1.0.0 v1.0.0]", first)
	}
	second := TagVariants("{tag}", first[2])
	if second != first {
		t.Errorf("TagVariants() not stable: %v != %v", second, first)
	}
}

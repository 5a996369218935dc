package version

import (
	"runtime"
	"testing"
)

func TestString_NonEmptyAndStable(t *testing.T) {
	t.Parallel()

	first := String()
	if first == "" {
		t.Fatal("String() returned an empty version")
	}
	for range 3 {
		if got := String(); got != first {
			t.Fatalf("String() = %q, want stable %q", got, first)
		}
	}
}

func TestNumber_Stable(t *testing.T) {
	t.Parallel()

	first := Number()
	for range 3 {
		if got := Number(); got != first {
			t.Fatalf("Number() = %v, want stable %v", got, first)
		}
	}
}

func TestNumberFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want float64
	}{
		{name: "tagged release", in: "1.0.0", want: 1.0},
		{name: "v prefix", in: "v1.2.3", want: 1.2},
		{name: "two digit minor", in: "2.14.0", want: 2.14},
		{name: "prerelease", in: "3.1.0-rc.1", want: 3.1},
		{name: "build metadata", in: "1.4.2+build.7", want: 1.4},
		{name: "partial version", in: "1.0", want: 1.0},
		{name: "devel placeholder", in: "0.0.0-devel", want: 0},
		{name: "not a version", in: "latest", want: 0},
		{name: "empty", in: "", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NumberFor(tc.in); got != tc.want {
				t.Errorf("NumberFor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestGet_ConsistentWithAccessors(t *testing.T) {
	t.Parallel()

	info := Get()

	if info.Version != String() {
		t.Errorf("Info.Version = %q, want %q", info.Version, String())
	}
	if info.Number != Number() {
		t.Errorf("Info.Number = %v, want %v", info.Number, Number())
	}
	if info.Commit != Commit() {
		t.Errorf("Info.Commit = %q, want %q", info.Commit, Commit())
	}
	if info.BuildDate != Date() {
		t.Errorf("Info.BuildDate = %q, want %q", info.BuildDate, Date())
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("Info.GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; info.Platform != want {
		t.Errorf("Info.Platform = %q, want %q", info.Platform, want)
	}
}

func TestGet_IdenticalAcrossCalls(t *testing.T) {
	t.Parallel()

	first := Get()
	second := Get()
	if first != second {
		t.Fatalf("Get() returned different snapshots: %+v vs %+v", first, second)
	}
}

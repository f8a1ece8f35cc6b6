package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pavdpr/envi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := GetRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := Execute()
	return stdout.String(), stderr.String(), err
}

func fixture(t *testing.T, withMap bool) string {
	t.Helper()
	m, err := envi.NewRaster(envi.Shape{Lines: 2, Samples: 3, Bands: 3, Kind: envi.Uint16})
	require.NoError(t, err)
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			for b := 0; b < 3; b++ {
				m.Set(r, c, b, float64(r*100+c*10+b))
			}
		}
	}

	h, err := envi.NewHeader(m.Shape)
	require.NoError(t, err)
	h.Description = "Command fixture"
	h.BandNames = []string{"red", "green", "blue"}
	h.Other = []envi.Entry{{Key: "cloud cover", Value: "0.25"}}
	if withMap {
		h.MapInfo = &envi.MapInfo{
			Projection: "UTM", RefX: 1, RefY: 1, Easting: 500000, Northing: 4500000, XSize: 30, YSize: 30,
			Zone: 13, Hemisphere: "North", Datum: "WGS-84", Units: "units=Meters",
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.img")
	require.NoError(t, envi.WriteFile(path, &envi.Image{Header: h, Raster: m}))
	return path
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "envi dev")
}

func TestInfo(t *testing.T) {
	path := fixture(t, true)

	stdout, stderr, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Command fixture")
	assert.Contains(t, stdout, "red, green, blue")
	assert.Contains(t, stdout, "12 (uint16)")
	assert.Contains(t, stdout, "bsq")
	assert.Contains(t, stdout, "cloud cover")
	assert.Contains(t, stdout, "0.25")
	assert.Contains(t, stdout, "[500000 4499970] - [500060 4500000]")
	assert.Empty(t, stderr)
}

func TestInfoWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nomarker.hdr")
	require.NoError(t, os.WriteFile(path, []byte("samples = 3\nlines = 2\n"), 0o644))

	stdout, stderr, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "samples")
	assert.Contains(t, stderr, "missing ENVI marker")
}

func TestInfoMissingFile(t *testing.T) {
	_, _, err := run(t, "info", filepath.Join(t.TempDir(), "absent.img"))
	assert.ErrorIs(t, err, envi.ErrHeaderFileNotFound)
}

func TestLocations(t *testing.T) {
	stdout, _, err := run(t, "locations", fixture(t, true))
	require.NoError(t, err)
	assert.Contains(t, stdout, "500060")
	assert.Contains(t, stdout, "4499970")

	_, _, err = run(t, "locations", fixture(t, false))
	assert.ErrorContains(t, err, "no map info")
}

func TestConvert(t *testing.T) {
	in := fixture(t, true)
	out := filepath.Join(t.TempDir(), "converted.img")

	_, _, err := run(t, "convert", "--interleave", "bip", "--byte-order", "1", in, out)
	require.NoError(t, err)

	src, err := envi.ReadFile(in)
	require.NoError(t, err)
	dst, err := envi.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, envi.BIP, dst.Header.Interleave)
	assert.Equal(t, envi.BigEndian, dst.Header.ByteOrder)
	assert.Equal(t, src.Raster, dst.Raster)
	assert.Equal(t, src.Header.MapInfo, dst.Header.MapInfo)
	assert.Equal(t, src.Header.Other, dst.Header.Other)

	_, _, err = run(t, "convert", "--interleave", "zzz", "--byte-order", "-1", in, out)
	assert.ErrorContains(t, err, "invalid interleave")

	_, _, err = run(t, "convert", "--interleave", "bsq", "--byte-order", "7", in, out)
	assert.ErrorContains(t, err, "invalid byte order")
}

func TestQuicklook(t *testing.T) {
	in := fixture(t, false)
	out := filepath.Join(t.TempDir(), "preview.tif")

	_, _, err := run(t, "quicklook", "--bands", "2,1,0", "--clip", "0", in, out)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	m, err := tiff.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Bounds().Dx())
	assert.Equal(t, 2, m.Bounds().Dy())

	_, _, err = run(t, "quicklook", "--bands", "0,1", "--clip", "0", in, out)
	assert.Error(t, err)
}

func TestExecuteClosesLogFileOnError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "envi.log")
	root := GetRootCmd()
	t.Cleanup(func() {
		_ = root.PersistentFlags().Set("log-output", "stderr")
		_ = root.PersistentFlags().Set("log-level", "WARN")
	})

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"info", "--log-level", "DEBUG", "--log-output", logPath, filepath.Join(t.TempDir(), "absent.img")})

	err := Execute()
	assert.ErrorIs(t, err, envi.ErrHeaderFileNotFound)
	assert.Nil(t, logCloser)

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "configuration loaded")
}

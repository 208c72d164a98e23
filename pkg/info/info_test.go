package info_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	itesting "github.com/bgrewell/bootimg-kit/internal/testing"
	"github.com/bgrewell/bootimg-kit/pkg/header"
	"github.com/bgrewell/bootimg-kit/pkg/info"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sections(l *info.ImageLayout) map[string][2]int64 {
	out := make(map[string][2]int64)
	for _, s := range l.Sections {
		out[s.Name] = [2]int64{s.Offset, s.Size}
	}
	return out
}

func bootV2(t *testing.T) header.BootImage {
	h := header.NewBootImgHdrV2()
	h.V1.V0.PageSize = 2048
	h.V1.V0.KernelSize = 5000
	h.V1.V0.RamdiskSize = 100
	h.V1.V0.OSVersion = header.OSVersion(11, 0, 0, 2021, 5)
	h.DtbSize = 300
	h.DtbAddr = 0x1f00000
	require.NoError(t, h.V1.V0.SetName("pixel"))
	img, err := header.ParseBootImage(itesting.MustMarshal(h))
	require.NoError(t, err)
	return img
}

func TestBootLayout_Legacy(t *testing.T) {
	l, err := info.BootLayout(bootV2(t))
	require.NoError(t, err)
	assert.Equal(t, uint32(2048), l.PageSize)
	assert.Equal(t, map[string][2]int64{
		"header":  {0, header.BOOT_IMG_HDR_V2_SIZE},
		"kernel":  {2048, 5000},
		"ramdisk": {8192, 100},
		"dtb":     {10240, 300},
	}, sections(l))

	for i := 1; i < len(l.Sections); i++ {
		assert.LessOrEqual(t, l.Sections[i-1].Offset, l.Sections[i].Offset)
	}
}

func TestBootLayout_RecoveryDtbo(t *testing.T) {
	h := header.NewBootImgHdrV1()
	h.V0.PageSize = 4096
	h.V0.KernelSize = 4096
	h.V0.SecondSize = 1
	h.RecoveryDtboSize = 512
	h.RecoveryDtboOffset = 0x10000

	img, err := header.ParseBootImage(itesting.MustMarshal(h))
	require.NoError(t, err)
	l, err := info.BootLayout(img)
	require.NoError(t, err)
	assert.Equal(t, map[string][2]int64{
		"header":        {0, header.BOOT_IMG_HDR_V1_SIZE},
		"kernel":        {4096, 4096},
		"ramdisk":       {8192, 0},
		"second":        {8192, 1},
		"recovery_dtbo": {0x10000, 512},
	}, sections(l))
}

func TestBootLayout_RecoveryDtboOutOfRange(t *testing.T) {
	for name, offset := range map[string]uint64{
		"negative as int64": 0xFFFFFFFFFFFFFF00,
		"end past max":      math.MaxInt64 - 8,
	} {
		t.Run(name, func(t *testing.T) {
			h := header.NewBootImgHdrV1()
			h.V0.PageSize = 4096
			h.RecoveryDtboSize = 16
			h.RecoveryDtboOffset = offset

			img, err := header.ParseBootImage(itesting.MustMarshal(h))
			require.NoError(t, err)
			_, err = info.BootLayout(img)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "recovery_dtbo")
			assert.Nil(t, info.Describe(img).Layout)
		})
	}
}

func TestSection_Fits(t *testing.T) {
	cases := map[string]struct {
		section info.Section
		fits    bool
	}{
		"inside":          {info.Section{Offset: 4096, Size: 100}, true},
		"ends at image":   {info.Section{Offset: 0, Size: 8192}, true},
		"past end":        {info.Section{Offset: 8000, Size: 200}, false},
		"negative offset": {info.Section{Offset: -240, Size: 16}, false},
		"negative size":   {info.Section{Offset: 16, Size: -1}, false},
		"end wraps":       {info.Section{Offset: math.MaxInt64 - 8, Size: 16}, false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.fits, c.section.Fits(8192))
		})
	}

	l := &info.ImageLayout{Sections: []*info.Section{{Name: "bad", Offset: -240, Size: 16}}}
	over := l.Overflows(8192)
	require.Len(t, over, 1)
	assert.Equal(t, "bad", over[0].Name)
}

func TestBootLayout_ZeroPageSize(t *testing.T) {
	img, err := header.ParseBootImage(itesting.BootImage(0))
	require.NoError(t, err)
	_, err = info.BootLayout(img)
	assert.Error(t, err)
	assert.Nil(t, info.Describe(img).Layout)
}

func TestBootLayout_Modern(t *testing.T) {
	h := header.NewBootImgHdrV4()
	h.V3.KernelSize = 4097
	h.V3.RamdiskSize = 10
	h.SignatureSize = 256

	img, err := header.ParseBootImage(itesting.MustMarshal(h))
	require.NoError(t, err)
	l, err := info.BootLayout(img)
	require.NoError(t, err)
	assert.Equal(t, uint32(4096), l.PageSize)
	assert.Equal(t, map[string][2]int64{
		"header":    {0, header.BOOT_IMG_HDR_V4_SIZE},
		"kernel":    {4096, 4097},
		"ramdisk":   {12288, 10},
		"signature": {16384, 256},
	}, sections(l))
}

func TestVendorBootLayout(t *testing.T) {
	h := header.NewVendorBootHdrV4()
	h.V3.PageSize = 4096
	h.V3.VendorRamdiskSize = 8192
	h.V3.DtbSize = 100
	h.VendorRamdiskTableEntryNum = 2
	h.VendorRamdiskTableEntrySize = header.VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE
	h.VendorRamdiskTableSize = 2 * header.VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE
	h.BootconfigSize = 64

	img, err := header.ParseVendorBootImage(itesting.MustMarshal(h))
	require.NoError(t, err)
	l, err := info.VendorBootLayout(img)
	require.NoError(t, err)
	assert.Equal(t, map[string][2]int64{
		"header":               {0, header.VENDOR_BOOT_HDR_V4_SIZE},
		"vendor_ramdisk":       {4096, 8192},
		"dtb":                  {12288, 100},
		"vendor_ramdisk_table": {16384, 216},
		"bootconfig":           {20480, 64},
	}, sections(l))

	over := l.Overflows(20480)
	require.Len(t, over, 1)
	assert.Equal(t, "bootconfig", over[0].Name)
	assert.Empty(t, l.Overflows(1<<20))
}

func TestVendorBootLayout_ZeroPageSize(t *testing.T) {
	img, err := header.ParseVendorBootImage(itesting.VendorBootImage(3))
	require.NoError(t, err)
	_, err = info.VendorBootLayout(img)
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	i := info.Describe(bootV2(t))
	assert.Equal(t, "boot", i.Family)
	assert.Equal(t, uint32(2), i.HeaderVersion)
	require.NotNil(t, i.OSVersion)
	assert.Equal(t, "11.0.0 (2021-05)", i.OSVersion.String())
	require.NotNil(t, i.Layout)

	for name, want := range map[string]string{
		"magic":        "ANDROID!",
		"name":         "pixel",
		"kernel_size":  "5000",
		"page_size":    "2048",
		"header_size":  "1660",
		"dtb_addr":     "0x0000000001f00000",
		"cmdline":      "",
		"second_addr":  "0x00000000",
		"dtb_size":     "300",
		"ramdisk_size": "100",
	} {
		got, ok := i.Field(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := i.Field("signature_size")
	assert.False(t, ok)
}

func TestDescribe_Modern(t *testing.T) {
	img, err := header.ParseBootImage(itesting.BootImage(4))
	require.NoError(t, err)
	i := info.Describe(img)
	assert.Nil(t, i.OSVersion)

	v, ok := i.Field("signature_size")
	require.True(t, ok)
	assert.Equal(t, "0", v)
	v, ok = i.Field("header_size")
	require.True(t, ok)
	assert.Equal(t, "2144", v)
}

func TestDescribeVendor(t *testing.T) {
	img, err := header.ParseVendorBootImage(itesting.VendorBootImage(4))
	require.NoError(t, err)
	i := info.DescribeVendor(img)
	assert.Equal(t, "vendor_boot", i.Family)
	assert.Equal(t, uint32(4), i.HeaderVersion)

	v, ok := i.Field("magic")
	require.True(t, ok)
	assert.Equal(t, "VNDRBOOT", v)
	_, ok = i.Field("bootconfig_size")
	assert.True(t, ok)
}

func TestHeaderInfo_JSON(t *testing.T) {
	i := info.Describe(bootV2(t))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(i.PrettyJSON()), &decoded))
	assert.Equal(t, "boot", decoded["family"])
	assert.EqualValues(t, 2, decoded["header_version"])
	assert.Contains(t, decoded, "layout")
}

func TestHeaderInfo_Print(t *testing.T) {
	var buf bytes.Buffer
	info.Describe(bootV2(t)).Print(&buf, false, false)
	out := buf.String()

	assert.Contains(t, out, "=== boot header v2 ===")
	assert.Contains(t, out, "=== layout (page size 2048) ===")
	assert.Contains(t, out, "Offset:       2048")
	assert.Contains(t, out, "os_release")
	assert.Contains(t, out, "11.0.0 (2021-05)")
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	info.Describe(bootV2(t)).Print(&buf, false, true)
	assert.Contains(t, buf.String(), "Offset:      0x800")
}

package extractor

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func TestExtractTXT(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
		want string
	}{
		{
			name: "utf8 with bom",
			data: func(t *testing.T) []byte { return append([]byte{0xEF, 0xBB, 0xBF}, []byte("Chỉ thị 50\r\n\r\n  sinh hoạt  ")...) },
			want: "Chỉ thị 50\nsinh hoạt",
		},
		{
			name: "utf16 little endian",
			data: func(t *testing.T) []byte {
				enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
				out, _, err := transform.Bytes(enc, []byte("Điều lệ Đảng"))
				require.NoError(t, err)
				return out
			},
			want: "Điều lệ Đảng",
		},
		{
			name: "windows 1258",
			// Đ, a + combining hook above, "ng viên"
			data: func(t *testing.T) []byte { return []byte{0xD0, 'a', 0xD2, 'n', 'g', ' ', 'v', 'i', 0xEA, 'n'} },
			want: "Đảng viên",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTXT(tt.data(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTXTEmpty(t *testing.T) {
	_, err := ExtractTXT(nil)
	assert.Error(t, err)

	_, err = ExtractTXT([]byte(" \n\t"))
	assert.Error(t, err)
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>Quyết định </w:t></w:r><w:r><w:t>294-QĐ/TW</w:t></w:r></w:p><w:p><w:r><w:t>Thi hành Điều lệ</w:t></w:r></w:p>`)

	got, err := ExtractDOCX(data)
	require.NoError(t, err)
	assert.Equal(t, "Quyết định 294-QĐ/TW\nThi hành Điều lệ", got)
}

func TestExtractDOCXInvalid(t *testing.T) {
	_, err := ExtractDOCX([]byte("not a zip"))
	assert.Error(t, err)
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Họ tên"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Chức danh"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Nguyễn Văn A"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "Bí thư"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := ExtractXLSX(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "## Sheet: Sheet1\nHọ tên\tChức danh\nNguyễn Văn A\tBí thư", got)
}

func TestExtractPDFInvalid(t *testing.T) {
	_, err := ExtractPDF([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestExtractDispatch(t *testing.T) {
	got, err := Extract("ghi chú.txt", "", []byte("nội dung"))
	require.NoError(t, err)
	assert.Equal(t, "nội dung", got)

	got, err = Extract("noext", "text/plain", []byte("văn bản"))
	require.NoError(t, err)
	assert.Equal(t, "văn bản", got)

	_, err = Extract("image.png", "image/png", []byte{0x89})
	assert.ErrorIs(t, err, ErrUnsupported)
}

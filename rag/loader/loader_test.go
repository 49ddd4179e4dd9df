package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hanoi.txt")
	content := "Hà Nội là thủ đô của Việt Nam.\n\nHồ Hoàn Kiếm nằm ở trung tâm."
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	docs, err := NewTextLoader(path, WithMetadata(map[string]any{"region": "north"})).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, content, docs[0].Content)
	assert.Equal(t, path, docs[0].Metadata["source"])
	assert.Equal(t, "north", docs[0].Metadata["region"])
}

func TestTextLoader_MissingFile(t *testing.T) {
	_, err := NewTextLoader("/nonexistent/file.txt").Load(context.Background())
	assert.Error(t, err)
}

func TestHTMLLoader(t *testing.T) {
	html := `<html>
		<head><title>Du lịch Đà Nẵng</title><style>p { color: red; }</style></head>
		<body>
			<nav>Trang chủ</nav>
			<h1>Đà Nẵng</h1>
			<p>Bãi biển Mỹ Khê nổi tiếng với cát trắng.</p>
			<script>alert("x")</script>
			<ul><li>Cầu Rồng</li><li>Bà Nà Hills</li></ul>
			<footer>liên hệ</footer>
		</body>
	</html>`

	docs, err := NewHTMLLoader(strings.NewReader(html)).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	content := docs[0].Content
	assert.Contains(t, content, "Đà Nẵng")
	assert.Contains(t, content, "Bãi biển Mỹ Khê")
	assert.Contains(t, content, "Cầu Rồng")
	assert.NotContains(t, content, "alert")
	assert.NotContains(t, content, "color: red")
	assert.NotContains(t, content, "Trang chủ")
	assert.NotContains(t, content, "liên hệ")

	assert.Equal(t, "Du lịch Đà Nẵng", docs[0].Metadata["title"])
	assert.Equal(t, "html", docs[0].Metadata["type"])
}

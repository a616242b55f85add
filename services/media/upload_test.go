package mediasvc_test

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	mediasvc "github.com/trezcool/darasa/services/media"
	testutil "github.com/trezcool/darasa/tests"
)

func Test_Service_Upload(t *testing.T) {
	conf := testutil.NewTestConfig(t)
	svc := mediasvc.NewService(conf, testutil.NopLogger{})

	var progress []int
	ref, err := svc.Upload("intro.MP4", strings.NewReader("fake video bytes"), func(pct int) {
		progress = append(progress, pct)
	})
	assert.NoError(t, err)

	// reference is locally addressable and keeps the (lowercased) extension
	assert.True(t, strings.HasPrefix(ref, "/media/"), "ref = %s", ref)
	assert.True(t, strings.HasSuffix(ref, ".mp4"), "ref = %s", ref)

	// file exists under the media root with the uploaded content
	name := strings.TrimPrefix(ref, "/media/")
	data, err := ioutil.ReadFile(filepath.Join(conf.MediaRoot, name))
	assert.NoError(t, err)
	assert.Equal(t, "fake video bytes", string(data))

	// progress is non-decreasing, within bounds and ends with exactly 100
	assert.NotEmpty(t, progress)
	last := 0
	for _, pct := range progress {
		assert.GreaterOrEqual(t, pct, last)
		assert.LessOrEqual(t, pct, 100)
		last = pct
	}
	assert.Equal(t, 100, progress[len(progress)-1])
}

func Test_Service_Upload_NoCallback(t *testing.T) {
	conf := testutil.NewTestConfig(t)
	svc := mediasvc.NewService(conf, testutil.NopLogger{})

	ref, err := svc.Upload("slides.pdf", strings.NewReader("pdf"), nil)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".pdf"))
}

func Test_Service_Upload_unusableRootShutsDown(t *testing.T) {
	conf := testutil.NewTestConfig(t)

	// a regular file where the media root should be makes MkdirAll fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	assert.NoError(t, ioutil.WriteFile(blocker, []byte("in the way"), 0644))
	conf.MediaRoot = blocker

	svc := mediasvc.NewService(conf, testutil.NopLogger{})
	_, err := svc.Upload("intro.mp4", strings.NewReader("bytes"), nil)
	assert.Error(t, err)
	assert.True(t, core.IsShutdown(err), "want a shutdown error, got %v", err)
}

package run

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/chrononame/internal/config"
	"github.com/John-Robertt/chrononame/internal/domain"
)

type recordingObserver struct {
	t       *testing.T
	started bool
	phases  []string
	renames []domain.RenamePlan
}

func (o *recordingObserver) OnStart(config.EffectiveConfig) { o.started = true }

func (o *recordingObserver) OnPhaseDone(name string, _ map[string]any, _ time.Duration) {
	o.phases = append(o.phases, name)
}

func (o *recordingObserver) OnRename(idx, total int, p domain.RenamePlan) {
	// 事件必须发生在重命名之前：此时源文件还在。
	_, err := os.Stat(p.Src)
	require.NoError(o.t, err, "OnRename 时源文件应仍存在")
	require.Equal(o.t, len(o.renames)+1, idx)
	o.renames = append(o.renames, p)
}

func effFor(dir string) config.EffectiveConfig {
	return config.EffectiveConfig{
		Dir:    dir,
		AbsDir: dir,
		Name:   config.DefaultName,
		Mode:   domain.ModeSequential,
	}
}

func TestExecute_Sequential_Scenario(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.png"), time.Unix(1_600_000_100, 0))
	touch(t, filepath.Join(dir, "a.txt"), time.Unix(1_600_000_000, 0))
	touch(t, filepath.Join(dir, "README"), time.Unix(1_600_000_200, 0))

	obs := &recordingObserver{t: t}
	rr, err := Execute(context.Background(), effFor(dir), obs)
	require.NoError(t, err)

	require.Equal(t, []string{"file0.txt", "file1.png", "file2"}, listDir(t, dir))
	require.True(t, obs.started)
	require.Equal(t, []string{"scan", "plan", "rename"}, obs.phases)
	require.Len(t, obs.renames, 3)

	require.Equal(t, domain.StatusOK, rr.Status)
	require.Equal(t, 3, rr.Summary.Renamed)
	require.Equal(t, []domain.FileResult{
		{Src: "a.txt", Dst: "file0.txt", Status: domain.FileStatusRenamed},
		{Src: "b.png", Dst: "file1.png", Status: domain.FileStatusRenamed},
		{Src: "README", Dst: "file2", Status: domain.FileStatusRenamed},
	}, rr.Items)
}

func TestExecute_Datetime_Scenario(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"), time.Unix(1577836800, 0))
	touch(t, filepath.Join(dir, "b.png"), time.Unix(1614834367, 0))

	eff := effFor(dir)
	eff.Name = "photo"
	eff.Mode = domain.ModeDatetime

	rr, err := Execute(context.Background(), eff, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"photo 2020-01-01 00:00:00.txt",
		"photo 2021-03-04 05:06:07.png",
	}, listDir(t, dir))
	require.Equal(t, domain.ModeDatetime, rr.Mode)
}

func TestExecute_LeavesSubdirsUntouched(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"), time.Unix(1_600_000_000, 0))
	touch(t, filepath.Join(dir, "sub", "inner.txt"), time.Unix(1_500_000_000, 0))

	_, err := Execute(context.Background(), effFor(dir), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"file0.txt", "sub"}, listDir(t, dir))
	require.Equal(t, []string{"inner.txt"}, listDir(t, filepath.Join(dir, "sub")))
}

func TestExecute_DryRun_NoRenames(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"), time.Unix(1_600_000_000, 0))
	touch(t, filepath.Join(dir, "b.png"), time.Unix(1_600_000_100, 0))

	eff := effFor(dir)
	eff.DryRun = true
	obs := &recordingObserver{t: t}

	rr, err := Execute(context.Background(), eff, obs)
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "b.png"}, listDir(t, dir))
	require.Len(t, obs.renames, 2)
	require.True(t, rr.DryRun)
	require.Equal(t, 2, rr.Summary.Planned)
	require.Equal(t, 0, rr.Summary.Renamed)
}

func TestExecute_TargetExists_StopsAndKeepsEarlierRenames(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "c.txt"), time.Unix(1_600_000_000, 0))
	touch(t, filepath.Join(dir, "a.txt"), time.Unix(1_600_000_100, 0))
	touch(t, filepath.Join(dir, "file1.txt"), time.Unix(1_600_000_200, 0))

	rr, err := Execute(context.Background(), effFor(dir), nil)
	require.Error(t, err)
	require.Equal(t, domain.ErrCodeTargetExists, domain.Code(err))

	// c.txt 已改名且保持；a.txt 未动；file1.txt 未被覆盖。
	require.Equal(t, []string{"a.txt", "file0.txt", "file1.txt"}, listDir(t, dir))
	b, err := os.ReadFile(filepath.Join(dir, "file1.txt"))
	require.NoError(t, err)
	require.Equal(t, "file1.txt", string(b))

	require.Equal(t, domain.StatusFailed, rr.Status)
	require.Equal(t, domain.ErrCodeTargetExists, rr.ErrorCode)
	require.Equal(t, []domain.FileResult{
		{Src: "c.txt", Dst: "file0.txt", Status: domain.FileStatusRenamed},
		{Src: "a.txt", Dst: "file1.txt", Status: domain.FileStatusFailed},
		{Src: "file1.txt", Dst: "file2.txt", Status: domain.FileStatusPlanned},
	}, rr.Items)
}

func TestExecute_RerunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"), time.Unix(1_600_000_000, 0))
	touch(t, filepath.Join(dir, "b.png"), time.Unix(1_600_000_100, 0))

	_, err := Execute(context.Background(), effFor(dir), nil)
	require.NoError(t, err)
	// 第二次运行：每个文件的目标就是它自己。
	_, err = Execute(context.Background(), effFor(dir), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"file0.txt", "file1.png"}, listDir(t, dir))
}

func TestExecute_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")

	rr, err := Execute(context.Background(), effFor(dir), nil)
	require.Equal(t, domain.ErrCodeInputFailed, domain.Code(err))
	require.Equal(t, domain.StatusFailed, rr.Status)
	require.Empty(t, rr.Items)
}

func TestExecute_Canceled(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"), time.Unix(1_600_000_000, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Execute(ctx, effFor(dir), nil)
	require.Equal(t, domain.ErrCodeCanceled, domain.Code(err))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []string{"a.txt"}, listDir(t, dir))
}

func TestExecute_Match(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"), time.Unix(1_600_000_000, 0))
	touch(t, filepath.Join(dir, "notes.txt"), time.Unix(1_500_000_000, 0))

	eff := effFor(dir)
	eff.Name = "img"
	eff.Match = "*.jpg"

	_, err := Execute(context.Background(), eff, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"img0.jpg", "notes.txt"}, listDir(t, dir))
}

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	// 内容写成文件名本身，方便检查“没有被覆盖”。
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

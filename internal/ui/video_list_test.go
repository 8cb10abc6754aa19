package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/go-test/deep"

	"github.com/ytget/playlist-demo/internal/model"
)

func testPlaylist(titles ...string) *model.Playlist {
	videos := make([]*model.Video, len(titles))
	for i, title := range titles {
		videos[i] = &model.Video{
			ID:       model.VideoID(i),
			Title:    title,
			Duration: "12:05",
			Status:   model.VideoStatusPending,
		}
	}
	return model.NewPlaylist("PL123", "Complete Web Development Course", "programming", videos)
}

func TestFilterVideoIndexes(t *testing.T) {
	playlist := testPlaylist(
		"JavaScript Fundamentals",
		"React Hooks Tutorial",
		"Node.js Backend Development",
		"CSS Grid Layout Guide",
	)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "blank keeps all", query: "  ", want: []int{0, 1, 2, 3}},
		{name: "case insensitive", query: "react", want: []int{1}},
		{name: "fuzzy subsequence", query: "jsfun", want: []int{0}},
		{name: "shared word", query: "Development", want: []int{2}},
		{name: "no match", query: "kubernetes", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterVideoIndexes(playlist.Videos, tt.query)
			if diff := deep.Equal(got, tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestVideoList_SetPlaylist(t *testing.T) {
	test.NewApp()
	vl := NewVideoList(NewLocalization())

	vl.SetPlaylist(testPlaylist("One", "Two", "Three"))
	if vl.VisibleCount() != 3 {
		t.Errorf("VisibleCount() = %d, want 3", vl.VisibleCount())
	}
	if vl.countLabel.Text != "3 videos found" {
		t.Errorf("count label = %q", vl.countLabel.Text)
	}
	if vl.titleLabel.Text != "Complete Web Development Course" {
		t.Errorf("title label = %q", vl.titleLabel.Text)
	}

	vl.SetFilter("two")
	if vl.VisibleCount() != 1 {
		t.Errorf("VisibleCount() after filter = %d, want 1", vl.VisibleCount())
	}

	vl.SetPlaylist(nil)
	if vl.VisibleCount() != 0 || vl.countLabel.Text != "" {
		t.Error("clearing the playlist should empty the section")
	}
}

func TestVideoList_UpdateVideo(t *testing.T) {
	test.NewApp()
	vl := NewVideoList(NewLocalization())
	playlist := testPlaylist("One", "Two")
	vl.SetPlaylist(playlist)

	vl.UpdateVideo(&model.VideoUpdate{
		Index:  1,
		ID:     model.VideoID(1),
		Status: model.VideoStatusCompleted,
		Path:   "/tmp/Two.txt",
	})
	if got := playlist.Videos[1]; got.Status != model.VideoStatusCompleted || got.OutputPath != "/tmp/Two.txt" {
		t.Errorf("video = %+v, want completed with path", got)
	}

	// Mismatched id is ignored.
	vl.UpdateVideo(&model.VideoUpdate{Index: 0, ID: model.VideoID(5), Status: model.VideoStatusError})
	if playlist.Videos[0].Status != model.VideoStatusPending {
		t.Error("update with a foreign id must not change the row")
	}

	// Out of range is ignored.
	vl.UpdateVideo(&model.VideoUpdate{Index: 9, ID: model.VideoID(9), Status: model.VideoStatusError})
}

func TestVideoRow_SetVideo(t *testing.T) {
	test.NewApp()
	row := NewVideoRow(NewLocalization())

	row.SetVideo(2, &model.Video{ID: model.VideoID(2), Title: "Three", Duration: "7:09", Status: model.VideoStatusDownloading})
	if row.indexLabel.Text != " 3." {
		t.Errorf("index label = %q", row.indexLabel.Text)
	}
	if row.statusText.Text != IconActive+" Downloading" {
		t.Errorf("status = %q", row.statusText.Text)
	}
	if !row.revealBtn.Disabled() {
		t.Error("reveal should be disabled without a saved file")
	}

	var revealed, viewed string
	row.SetCallbacks(func(p string) { revealed = p }, func(p string) { viewed = p })
	row.SetVideo(2, &model.Video{ID: model.VideoID(2), Title: "Three", Status: model.VideoStatusCompleted, OutputPath: "/tmp/Three.txt"})
	if row.revealBtn.Disabled() {
		t.Fatal("reveal should be enabled once the file exists")
	}
	test.Tap(row.revealBtn)
	test.Tap(row.viewBtn)
	if revealed != "/tmp/Three.txt" || viewed != "/tmp/Three.txt" {
		t.Errorf("revealed = %q, viewed = %q", revealed, viewed)
	}
}

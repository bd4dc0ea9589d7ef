package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathima-sithara/messenger-backend/internal/models"
)

func TestBuildReplyPreviewResolvesTarget(t *testing.T) {
	target := &models.Message{ID: "m1", ChatID: "c1", SenderID: "bob", Type: models.MessageText, Text: "original"}
	reply := &models.Message{ID: "m2", ChatID: "c1", SenderID: "alice", Type: models.MessageText, Text: "answer", ReplyToMessageID: "m1"}

	p := BuildReplyPreview(reply, []*models.Message{target, reply}, "alice", map[string]string{"bob": "Bob"})
	require.NotNil(t, p)
	assert.Equal(t, "m1", p.MessageID)
	assert.Equal(t, "Bob", p.SenderName)
	assert.Equal(t, "original", p.Snippet)
	assert.Empty(t, p.ThumbnailURL)
}

func TestBuildReplyPreviewMissingTarget(t *testing.T) {
	// the reference is weak: a deleted target drops the preview entirely
	reply := &models.Message{ID: "m2", ChatID: "c1", SenderID: "alice", Type: models.MessageText, Text: "answer", ReplyToMessageID: "gone"}
	assert.Nil(t, BuildReplyPreview(reply, []*models.Message{reply}, "alice", nil))
}

func TestBuildReplyPreviewNoReference(t *testing.T) {
	msg := &models.Message{ID: "m1", ChatID: "c1", SenderID: "alice", Type: models.MessageText, Text: "plain"}
	assert.Nil(t, BuildReplyPreview(msg, []*models.Message{msg}, "alice", nil))
	assert.Nil(t, BuildReplyPreview(nil, nil, "alice", nil))
}

func TestBuildReplyPreviewOwnMessage(t *testing.T) {
	target := &models.Message{ID: "m1", ChatID: "c1", SenderID: "alice", Type: models.MessageText, Text: "mine"}
	reply := &models.Message{ID: "m2", ChatID: "c1", SenderID: "bob", Type: models.MessageText, Text: "yours", ReplyToMessageID: "m1"}

	p := BuildReplyPreview(reply, []*models.Message{target, reply}, "alice", nil)
	require.NotNil(t, p)
	assert.Equal(t, "You", p.SenderName)
}

func TestBuildReplyPreviewMediaSnippets(t *testing.T) {
	cases := []struct {
		msg     models.Message
		snippet string
		thumb   string
	}{
		{models.Message{ID: "t", Type: models.MessageImage, MediaURL: "https://cdn/img.jpg"}, "[image]", "https://cdn/img.jpg"},
		{models.Message{ID: "t", Type: models.MessageVideo, MediaURL: "https://cdn/v.mp4"}, "[video]", ""},
		{models.Message{ID: "t", Type: models.MessageAudio, MediaURL: "https://cdn/a.ogg"}, "[audio]", ""},
		{models.Message{ID: "t", Type: models.MessageFile, MediaURL: "https://cdn/f.pdf", FileName: "notes.pdf"}, "[file] notes.pdf", ""},
		{models.Message{ID: "t", Type: models.MessageFile, MediaURL: "https://cdn/f.pdf"}, "[file]", ""},
	}
	for _, tc := range cases {
		target := tc.msg
		target.ChatID = "c1"
		target.SenderID = "bob"
		reply := &models.Message{ID: "r", ChatID: "c1", SenderID: "alice", Type: models.MessageText, Text: "re", ReplyToMessageID: "t"}

		p := BuildReplyPreview(reply, []*models.Message{&target, reply}, "alice", nil)
		require.NotNil(t, p)
		assert.Equal(t, tc.snippet, p.Snippet)
		assert.Equal(t, tc.thumb, p.ThumbnailURL)
	}
}

func TestBuildReplyPreviewUnknownSender(t *testing.T) {
	target := &models.Message{ID: "m1", ChatID: "c1", SenderID: "ghost", Type: models.MessageText, Text: "boo"}
	reply := &models.Message{ID: "m2", ChatID: "c1", SenderID: "alice", Type: models.MessageText, Text: "re", ReplyToMessageID: "m1"}

	p := BuildReplyPreview(reply, []*models.Message{target, reply}, "alice", map[string]string{})
	require.NotNil(t, p)
	assert.Equal(t, "Unknown", p.SenderName)
}

package service

import "github.com/fathima-sithara/messenger-backend/internal/models"

// ReplyPreview is the quoted block rendered above a reply message.
type ReplyPreview struct {
	MessageID    string `json:"message_id"`
	SenderName   string `json:"sender_name"`
	Snippet      string `json:"snippet"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// BuildReplyPreview resolves a reply target against the loaded message list.
// The reference is weak: a missing or empty target yields nil and the caller
// renders the message without a quote.
func BuildReplyPreview(msg *models.Message, loaded []*models.Message, viewerID string, names map[string]string) *ReplyPreview {
	if msg == nil || msg.ReplyToMessageID == "" {
		return nil
	}
	var target *models.Message
	for _, m := range loaded {
		if m.ID == msg.ReplyToMessageID {
			target = m
			break
		}
	}
	if target == nil {
		return nil
	}

	p := &ReplyPreview{MessageID: target.ID}

	if target.SenderID == viewerID {
		p.SenderName = "You"
	} else if name, ok := names[target.SenderID]; ok && name != "" {
		p.SenderName = name
	} else {
		p.SenderName = "Unknown"
	}

	switch {
	case target.Text != "":
		p.Snippet = target.Text
	case target.Type == models.MessageImage:
		p.Snippet = "[image]"
	case target.Type == models.MessageVideo:
		p.Snippet = "[video]"
	case target.Type == models.MessageAudio:
		p.Snippet = "[audio]"
	case target.Type == models.MessageFile:
		if target.FileName != "" {
			p.Snippet = "[file] " + target.FileName
		} else {
			p.Snippet = "[file]"
		}
	default:
		p.Snippet = "[message]"
	}

	if target.Type == models.MessageImage && target.MediaURL != "" {
		p.ThumbnailURL = target.MediaURL
	}
	return p
}

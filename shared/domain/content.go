package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type SegmentType string

const (
	SegmentText     SegmentType = "text"
	SegmentEmoticon SegmentType = "emoticon"
	SegmentUsername SegmentType = "username"
	SegmentUrl      SegmentType = "url"
	SegmentImage    SegmentType = "image"
	SegmentVideo    SegmentType = "video"
	SegmentAudio    SegmentType = "audio"
)

// Segment is one typed piece of a post or comment body.
// The set of implementations is closed: Text, Emoticon, Username, Url, Image, Video, Audio.
type Segment interface {
	SegmentType() SegmentType
}

type Text struct {
	Text string `json:"text"`
}

type Emoticon struct {
	Id   string `json:"id"`
	Desc string `json:"desc"`
}

// Username is an @mention.
type Username struct {
	Text   string `json:"text"`
	UserId UserId `json:"user_id"`
}

type Url struct {
	Text string `json:"text"`
	Url  string `json:"url"`
}

type Image struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Video struct {
	Src      string `json:"src"`
	Cover    string `json:"cover"`
	Duration int    `json:"duration"`
}

type Audio struct {
	Md5      string `json:"md5"`
	Duration int    `json:"duration"`
}

func (Text) SegmentType() SegmentType     { return SegmentText }
func (Emoticon) SegmentType() SegmentType { return SegmentEmoticon }
func (Username) SegmentType() SegmentType { return SegmentUsername }
func (Url) SegmentType() SegmentType      { return SegmentUrl }
func (Image) SegmentType() SegmentType    { return SegmentImage }
func (Video) SegmentType() SegmentType    { return SegmentVideo }
func (Audio) SegmentType() SegmentType    { return SegmentAudio }

// Content is an ordered rich text payload. nil means the archive holds no payload.
type Content []Segment

// PlainText is the readable text of the content: text, mention and link
// segments in order, with nothing in between. Media and emoticons add nothing.
func (c Content) PlainText() string {
	var sb strings.Builder
	for _, seg := range c {
		switch s := seg.(type) {
		case Text:
			sb.WriteString(s.Text)
		case Username:
			sb.WriteString(s.Text)
		case Url:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, seg := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		encoded, err := tagged(string(seg.SegmentType()), seg)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("content is not a segment list: %w", err)
	}
	if raw == nil {
		*c = nil
		return nil
	}

	content := make(Content, 0, len(raw))
	for i, r := range raw {
		seg, err := decodeSegment(r)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		content = append(content, seg)
	}
	*c = content
	return nil
}

func decodeSegment(raw json.RawMessage) (Segment, error) {
	var head struct {
		Type SegmentType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case SegmentText:
		return decodeAs[Text](raw)
	case SegmentEmoticon:
		return decodeAs[Emoticon](raw)
	case SegmentUsername:
		return decodeAs[Username](raw)
	case SegmentUrl:
		return decodeAs[Url](raw)
	case SegmentImage:
		return decodeAs[Image](raw)
	case SegmentVideo:
		return decodeAs[Video](raw)
	case SegmentAudio:
		return decodeAs[Audio](raw)
	default:
		return nil, fmt.Errorf("unknown segment type %q", head.Type)
	}
}

func decodeAs[T Segment](raw json.RawMessage) (Segment, error) {
	var seg T
	if err := json.Unmarshal(raw, &seg); err != nil {
		return nil, err
	}
	return seg, nil
}

// tagged encodes v as a JSON object with a leading "type" member.
func tagged(tag string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}
	out := append([]byte(`{"type":`), head...)
	if len(body) > 2 {
		out = append(out, ',')
		out = append(out, body[1:]...)
	} else {
		out = append(out, '}')
	}
	return out, nil
}

var strictPolicy = bluemonday.StrictPolicy()

// stripMarkup drops html that scraped text may carry, keeping entities as plain characters.
func stripMarkup(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// ParseContent decodes a stored payload. An empty payload is no content;
// anything else must be a complete, well formed segment list.
func ParseContent(payload []byte) (Content, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}
	var c Content
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, err
	}
	for i, seg := range c {
		switch s := seg.(type) {
		case Text:
			s.Text = stripMarkup(s.Text)
			c[i] = s
		case Url:
			s.Text = stripMarkup(s.Text)
			c[i] = s
		}
	}
	return c, nil
}

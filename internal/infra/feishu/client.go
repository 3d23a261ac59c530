package feishu

import (
	"context"
	"encoding/json"
	"fmt"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkim "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
)

// postLocale is the language block rich-text alerts are written in
const postLocale = "en_us"

// Client is the Feishu API client used for ops alerts
type Client struct {
	larkCli *lark.Client
}

// NewClient creates a new Feishu client
func NewClient(appID, appSecret string) *Client {
	return &Client{
		larkCli: lark.NewClient(appID, appSecret),
	}
}

type postElement struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

type postBody struct {
	Title   string          `json:"title"`
	Content [][]postElement `json:"content"`
}

// PostContent builds the content JSON of a rich-text message, one paragraph per line
func PostContent(title string, lines []string) (string, error) {
	body := postBody{Title: title, Content: make([][]postElement, 0, len(lines))}
	for _, line := range lines {
		body.Content = append(body.Content, []postElement{{Tag: "text", Text: line}})
	}
	data, err := json.Marshal(map[string]postBody{postLocale: body})
	if err != nil {
		return "", fmt.Errorf("marshal post content: %w", err)
	}
	return string(data), nil
}

// SendPost sends a titled rich-text message to a chat
func (c *Client) SendPost(ctx context.Context, chatID, title string, lines []string) error {
	content, err := PostContent(title, lines)
	if err != nil {
		return err
	}

	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(larkim.ReceiveIdTypeChatId).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(chatID).
			MsgType(larkim.MsgTypePost).
			Content(content).
			Build()).
		Build()

	resp, err := c.larkCli.Im.Message.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("send alert to %s: %w", chatID, err)
	}
	if !resp.Success() {
		return fmt.Errorf("send alert to %s: code %d: %s", chatID, resp.Code, resp.Msg)
	}
	return nil
}

// =============================================================================
// notion.go - Notionデータベースへのクリップ
// =============================================================================
//
// 取得したレコードを Notion データベースに1ページずつ保存します（任意機能）。
//
// 【データベースのプロパティ】
//
//	Title       - タイトル（title）
//	Scholar Link - 詳細ページURL（url）
//	Source Link - 外部ソースURL（url、空なら省略）
//	Authors     - 著者（rich_text）
//	Venue       - 掲載誌（rich_text）
//	Year        - 年（rich_text）
//
// =============================================================================
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// notionTextLimit は rich_text 1要素あたりの上限文字数
	notionTextLimit = 2000

	// notionRequestInterval は Notion API の平均3リクエスト/秒に合わせた間隔
	notionRequestInterval = time.Second / 3
)

// Clipper はレコードを外部に保存する
type Clipper interface {
	ClipPublication(ctx context.Context, rec PublicationRecord) error
}

// NotionClipper は Notion API でレコードを保存する
type NotionClipper struct {
	client  *notionapi.Client
	dbID    notionapi.DatabaseID
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewNotionClipper は Notion クリッパーを生成する
//
// databaseID が空の場合は CreateDatabase を先に呼ぶ必要がある。
func NewNotionClipper(token, databaseID string, log *zap.Logger) (*NotionClipper, error) {
	if token == "" {
		return nil, errors.New("NOTION_TOKEN is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	nc := &NotionClipper{
		client:  notionapi.NewClient(notionapi.Token(token)),
		limiter: rate.NewLimiter(rate.Every(notionRequestInterval), 1),
		log:     log,
	}
	if databaseID != "" {
		nc.dbID = notionapi.DatabaseID(databaseID)
	}
	return nc, nil
}

// DatabaseID は現在のデータベースIDを返す
func (nc *NotionClipper) DatabaseID() string {
	return string(nc.dbID)
}

// CreateDatabase は pageID の下に論文用データベースを作成する
func (nc *NotionClipper) CreateDatabase(ctx context.Context, pageID string) (string, error) {
	if pageID == "" {
		return "", errors.New("NOTION_PAGE_ID is required to create a new database")
	}

	req := &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(pageID),
		},
		Title: []notionapi.RichText{
			{Text: &notionapi.Text{Content: "Publications"}},
		},
		Properties: publicationPropertyConfigs(),
	}

	if err := nc.wait(ctx); err != nil {
		return "", err
	}
	db, err := nc.client.Database.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create Notion database: %w", err)
	}

	nc.dbID = notionapi.DatabaseID(db.ID)
	nc.log.Info("notion database created", zap.String("id", string(db.ID)))
	return string(db.ID), nil
}

// ClipPublication は1レコードをページとして保存する
func (nc *NotionClipper) ClipPublication(ctx context.Context, rec PublicationRecord) error {
	if nc.dbID == "" {
		return errors.New("database ID not set")
	}

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: nc.dbID,
		},
		Properties: publicationProperties(rec),
	}

	if err := nc.wait(ctx); err != nil {
		return err
	}
	if _, err := nc.client.Page.Create(ctx, req); err != nil {
		return fmt.Errorf("failed to clip publication: %w", err)
	}
	return nil
}

// wait は Notion API のレート制限に合わせて次のリクエストまで待つ
func (nc *NotionClipper) wait(ctx context.Context) error {
	if err := nc.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("notion rate limiter: %w", err)
	}
	return nil
}

// ClipAll は全レコードを順に保存し、成功件数を返す
//
// 1件の失敗は警告ログにとどめて次へ進む。
func ClipAll(ctx context.Context, c Clipper, records []PublicationRecord, log *zap.Logger) int {
	if log == nil {
		log = zap.NewNop()
	}
	clipped := 0
	for _, rec := range records {
		if err := c.ClipPublication(ctx, rec); err != nil {
			log.Warn("failed to clip publication", zap.String("title", rec.Title), zap.Error(err))
			continue
		}
		clipped++
	}
	return clipped
}

func publicationPropertyConfigs() notionapi.PropertyConfigs {
	return notionapi.PropertyConfigs{
		"Title":        notionapi.TitlePropertyConfig{Type: notionapi.PropertyConfigTypeTitle},
		"Scholar Link": notionapi.URLPropertyConfig{Type: notionapi.PropertyConfigTypeURL},
		"Source Link":  notionapi.URLPropertyConfig{Type: notionapi.PropertyConfigTypeURL},
		"Authors":      notionapi.RichTextPropertyConfig{Type: notionapi.PropertyConfigTypeRichText},
		"Venue":        notionapi.RichTextPropertyConfig{Type: notionapi.PropertyConfigTypeRichText},
		"Year":         notionapi.RichTextPropertyConfig{Type: notionapi.PropertyConfigTypeRichText},
	}
}

func publicationProperties(rec PublicationRecord) notionapi.Properties {
	props := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: richText(rec.Title),
		},
		"Scholar Link": notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  rec.ScholarLink,
		},
		"Authors": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(rec.Authors),
		},
		"Venue": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(rec.Venue),
		},
		"Year": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(rec.Year),
		},
	}
	// 空のURLは Notion が拒否する
	if rec.SourceLink != "" {
		props["Source Link"] = notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  rec.SourceLink,
		}
	}
	return props
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: truncateString(s, notionTextLimit)}},
	}
}

// truncateString は文字列を指定した長さ（rune数）に切り詰める
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

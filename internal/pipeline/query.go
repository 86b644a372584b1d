// =============================================================================
// query.go - DocumentQuery（HTML走査の抽象化）
// =============================================================================
//
// リスティング・詳細ページの解析ロジックはこのインターフェースだけに依存し、
// goquery には直接依存しません。
//
//	FindAll(selector)  - セレクタに一致するノードを文書順で返す
//	Attribute(name)    - 属性値（存在しなければ ok=false）
//	Text()             - 子孫を含むテキスト
//
// =============================================================================
package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DocumentQuery はセレクタで要素を検索できるもの（文書全体またはノード）
type DocumentQuery interface {
	FindAll(selector string) []Node
}

// Node は検索結果の1要素
type Node interface {
	DocumentQuery
	Attribute(name string) (string, bool)
	Text() string
}

// -----------------------------------------------------------------------------
// goquery 実装
// -----------------------------------------------------------------------------

// goqueryNode は *goquery.Selection をラップする
type goqueryNode struct {
	sel *goquery.Selection
}

// ParseDocument はHTMLを読み込んで DocumentQuery を返す
func ParseDocument(r io.Reader) (DocumentQuery, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return goqueryNode{sel: doc.Selection}, nil
}

// ParseDocumentString は文字列版の ParseDocument
func ParseDocumentString(html string) (DocumentQuery, error) {
	return ParseDocument(strings.NewReader(html))
}

func (n goqueryNode) FindAll(selector string) []Node {
	found := n.sel.Find(selector)
	out := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, goqueryNode{sel: s})
	})
	return out
}

func (n goqueryNode) Attribute(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n goqueryNode) Text() string {
	return n.sel.Text()
}

// -----------------------------------------------------------------------------
// ヘルパー
// -----------------------------------------------------------------------------

// firstText は最初に一致したノードのテキスト（トリム済み）を返す
func firstText(q DocumentQuery, selector string) string {
	nodes := q.FindAll(selector)
	if len(nodes) == 0 {
		return ""
	}
	return strings.TrimSpace(nodes[0].Text())
}

// allText は一致した全ノードのテキストを連結してトリムする
func allText(q DocumentQuery, selector string) string {
	var b strings.Builder
	for _, n := range q.FindAll(selector) {
		b.WriteString(n.Text())
	}
	return strings.TrimSpace(b.String())
}

// nthText は i 番目のノードのテキスト（存在しなければ ""）
func nthText(nodes []Node, i int) string {
	if i < 0 || i >= len(nodes) {
		return ""
	}
	return strings.TrimSpace(nodes[i].Text())
}

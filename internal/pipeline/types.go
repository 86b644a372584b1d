// =============================================================================
// types.go - データ構造定義
// =============================================================================
//
// 【このファイルで定義している型】
//   - PublicationSummary: リスティング1行から取り出した未加工データ
//   - ResolvedLink:       詳細ページから解決した外部リンク
//   - PublicationRecord:  最終的にJSONへ書き出すレコード
//
// =============================================================================
package pipeline

// -----------------------------------------------------------------------------
// PublicationSummary - リスティング行の未加工データ
// -----------------------------------------------------------------------------
//
// 生成後は変更しない。
//
//	Title:           リンクテキスト
//	DetailReference: 詳細ページへの相対参照（例: "/citations?view_op=view_citation&..."）
//	RawAuthorsText:  1つ目の .gs_gray ブロック
//	RawVenueBlock:   2つ目の .gs_gray ブロック（venue + 年）
//	Year:            年（.gs_oph があればそちらを優先）
type PublicationSummary struct {
	Title           string
	DetailReference string
	RawAuthorsText  string
	RawVenueBlock   string
	Year            string
}

// ResolvedLink は詳細ページから解決した外部リンク（見つからなければ空）
type ResolvedLink struct {
	Source string
}

// -----------------------------------------------------------------------------
// PublicationRecord - 出力レコード
// -----------------------------------------------------------------------------
//
// publications.json の配列要素。リスティングの順序を保持し、重複除去はしない。
type PublicationRecord struct {
	Title       string `json:"title"`       // 論文タイトル
	ScholarLink string `json:"scholarLink"` // 詳細ページの絶対URL
	SourceLink  string `json:"sourceLink"`  // 外部ソースURL（解決失敗時は ""）
	Authors     string `json:"authors"`     // 正規化済み著者（", " 区切り）
	Venue       string `json:"venue"`       // クリーンアップ済み掲載誌
	Year        string `json:"year"`        // 発行年
}

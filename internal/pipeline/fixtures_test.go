package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// listingHTML は3行のリスティングページ（2行目は .gs_oph 無し、3行目は venue 無し）
const listingHTML = `<!DOCTYPE html>
<html><body>
<table id="gsc_a_t">
<tbody id="gsc_a_b">
  <tr class="gsc_a_tr">
    <td class="gsc_a_t">
      <a href="/citations?view_op=view_citation&amp;X" class="gsc_a_at">Example Paper</a>
      <div class="gs_gray">A. One,  B. Two</div>
      <div class="gs_gray">Proc. Foo<span class="gs_oph">, 2020</span></div>
    </td>
    <td class="gsc_a_c"><a class="gsc_a_ac">12</a></td>
    <td class="gsc_a_y"><span class="gsc_a_h gsc_a_hc">2019</span></td>
  </tr>
  <tr class="gsc_a_tr">
    <td class="gsc_a_t">
      <a href="/citations?view_op=view_citation&amp;Y" class="gsc_a_at">Second Paper</a>
      <div class="gs_gray">C. Three</div>
      <div class="gs_gray">Journal of Bar 12 (3) [Google Scholar], </div>
    </td>
    <td class="gsc_a_y"><span class="gsc_a_h gsc_a_hc">2018</span></td>
  </tr>
  <tr class="gsc_a_tr">
    <td class="gsc_a_t">
      <a href="/citations?view_op=view_citation&amp;Z" class="gsc_a_at">Example Paper</a>
      <div class="gs_gray">D. Four</div>
    </td>
    <td class="gsc_a_y"><span class="gsc_a_h gsc_a_hc"></span></td>
  </tr>
</tbody>
</table>
</body></html>`

const emptyListingHTML = `<html><body><table><tbody id="gsc_a_b"></tbody></table></body></html>`

// detailArxivHTML は主ゾーンに arXiv リンクが1つだけある詳細ページ
const detailArxivHTML = `<html><body>
<div id="gsc_oci_title_gg">
  <div class="gsc_oci_title_ggi"><a href="https://arxiv.org/abs/1234.5678"><span class="gsc_vcd_title_ggt">[PDF]</span> arxiv.org</a></div>
</div>
<div id="gsc_oci_title"><span>Example Paper</span></div>
</body></html>`

// detailValueOnlyHTML は値ゾーンにだけリンクがある詳細ページ
const detailValueOnlyHTML = `<html><body>
<div id="gsc_oci_title">Second Paper</div>
<div class="gs_scl">
  <div class="gsc_oci_field">Total citations</div>
  <div class="gsc_oci_value"><a href="/scholar?oi=bibs&amp;cites=1">Cited by 12</a></div>
</div>
<div class="gs_scl">
  <div class="gsc_oci_field">Scholar articles</div>
  <div class="gsc_oci_value">
    <a href="https://scholar.google.com/scholar?cluster=1">All 3 versions</a>
    <a href="https://doi.org/10.1000/bar">Publisher</a>
    <a href="https://example.org/other">Other</a>
  </div>
</div>
</body></html>`

// fakeFetcher はURLごとに固定のHTMLまたはエラーを返す
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeFetcher) Fetch(_ context.Context, u string) (DocumentQuery, error) {
	f.mu.Lock()
	f.calls = append(f.calls, u)
	f.mu.Unlock()

	if err, ok := f.errs[u]; ok {
		return nil, err
	}
	html, ok := f.pages[u]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", u)
	}
	return ParseDocumentString(html)
}

// countingLimiter は WaitTurn の呼び出し回数を数える
type countingLimiter struct {
	turns int
	err   error
}

func (l *countingLimiter) WaitTurn(context.Context) error {
	l.turns++
	return l.err
}

var errBoom = errors.New("boom")

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ScholarID = "abcdEFGAAAAJ"
	cfg.Delay = 0
	return cfg
}

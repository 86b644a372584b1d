// =============================================================================
// output.go - JSON出力
// =============================================================================
//
// 【ファイル出力】
//   - 出力ディレクトリが無ければ作成
//   - 2スペースインデントのJSON配列（UTF-8）
//   - 毎回ファイル全体を置き換える（一時ファイルに書いてから rename）
//     → 途中で落ちても中途半端なファイルは残らない
//
// =============================================================================
package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteRecords はレコードを dir/name に書き出し、書き込んだパスを返す
func WriteRecords(dir, name string, records []PublicationRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	b, err := marshalRecords(records)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := writeFileAtomic(path, b); err != nil {
		return "", err
	}
	return path, nil
}

// WriteRecordsTo はレコードを任意の Writer（標準出力など）に書き出す
func WriteRecordsTo(w io.Writer, records []PublicationRecord) error {
	if records == nil {
		records = []PublicationRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// ReadRecords は書き出し済みのJSONファイルを読み込む
func ReadRecords(path string) ([]PublicationRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []PublicationRecord
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// marshalRecords は空でも "[]" になるようにJSON化する（URL中の & はエスケープしない）
func marshalRecords(records []PublicationRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteRecordsTo(&buf, records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFileAtomic は同じディレクトリの一時ファイルに書いてから rename する
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

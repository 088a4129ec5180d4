package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern build pattern LIKE cho substring, escape ký tự đặc biệt của người dùng
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}

// foldTitle là dạng lowercase (Unicode) của title, lưu ở cột title_lower.
// LOWER() của SQLite và ILIKE dưới collation C chỉ hạ ASCII.
func foldTitle(title string) string {
	return strings.ToLower(title)
}

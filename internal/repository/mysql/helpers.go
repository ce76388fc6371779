package mysql

import (
	"errors"
	"strings"

	"github.com/leonemunyao/alx-project-nexus/config"

	"github.com/go-sql-driver/mysql"
)

// mysqlErrDuplicateEntry MySQL 唯一约束冲突的错误码
const mysqlErrDuplicateEntry = 1062

// IsDuplicateEntry 判断错误是否为唯一约束冲突
// 并发写入竞争同一唯一键时，数据库保证恰好一个成功，
// 其余以该错误返回
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return false
}

// absoluteImageURL 将本地存储的相对路径拼接为完整地址
// S3/GCS 返回的已是完整URL，原样返回
func absoluteImageURL(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return config.AppConfig.BackendURL + "/uploads/" + url
}

// relativeImageURL 是 absoluteImageURL 的逆操作
// 落库只保留相对路径，BACKEND_URL 变更后旧记录不受影响
func relativeImageURL(url string) string {
	return strings.TrimPrefix(url, config.AppConfig.BackendURL+"/uploads/")
}

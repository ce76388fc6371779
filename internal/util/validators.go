package util

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// 车辆年份下限，旧版本为1900，现行模式收紧到2020
const MinCarYear = 2020

// MaxCarYear 返回允许的车辆年份上限（次年车型允许提前上架）
func MaxCarYear() int {
	return time.Now().Year() + 1
}

// ValidateCarYear 验证车辆年份是否在允许区间内
func ValidateCarYear(fl validator.FieldLevel) bool {
	year, ok := fl.Field().Interface().(int)
	if !ok {
		return false
	}
	return year >= MinCarYear && year <= MaxCarYear()
}

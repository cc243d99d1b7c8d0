package web

import (
	"errors"
	"net/http"

	"RangeScope/internal/model"
)

// User-facing messages. Raw error text is logged, never shown.
const (
	MsgInvalidParameter = "入力値が正しくありません。ティックサイズには正の数値を、期間と間隔には一覧の値を指定してください。"
	MsgTooManyBins      = "ティックサイズが小さすぎます。価格の変動幅に対してヒストグラムの区間数が上限を超えるため、より大きなティックサイズを指定してください。"
	MsgUnknownSymbol    = "無効な銘柄コードが入力されました。正しい銘柄コードを入力してください。"
	MsgProviderFailure  = "市場データの取得に失敗しました。しばらくしてから再度お試しください。"
	MsgInternal         = "エラーが発生しました。しばらくしてから再度お試しください。"
	MsgNotAvailable     = "N/A"
)

// UserMessage maps an error to a fixed message safe to render.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrTooManyBins):
		return MsgTooManyBins
	case errors.Is(err, model.ErrInvalidParameter):
		return MsgInvalidParameter
	case errors.Is(err, model.ErrUnknownSymbol):
		return MsgUnknownSymbol
	case errors.Is(err, model.ErrProviderFailure):
		return MsgProviderFailure
	case errors.Is(err, model.ErrEmptyGroup):
		return MsgNotAvailable
	default:
		return MsgInternal
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnknownSymbol):
		return http.StatusNotFound
	case errors.Is(err, model.ErrProviderFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

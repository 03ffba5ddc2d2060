package assistant

import "fmt"

const (
	MsgGreeting = "안녕하세요! 무엇을 도와드릴까요?"

	MsgProductNotFound = "주문하실 상품을 찾을 수 없습니다. 상품 번호나 이름을 정확히 입력해주세요."
	MsgLoginRequired   = "주문을 하시려면 먼저 로그인이 필요합니다. 로그인 페이지로 이동하시겠어요?"
	MsgPaymentCanceled = "결제가 취소되었습니다"
	MsgOrderFailed     = "주문 처리 중 오류가 발생했습니다."

	MsgNoResults = "검색 결과가 없습니다. 다른 검색어를 시도해보세요."

	MsgEmptyCompletion  = "죄송합니다. 응답을 생성할 수 없습니다."
	MsgCompletionFailed = "죄송합니다. 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

func orderPlacedMessage(name string, quantity int) string {
	return fmt.Sprintf("%s %d개 주문 완료!", name, quantity)
}

func quantityLimitMessage(limit int) string {
	return fmt.Sprintf("한 번에 최대 %d개까지 주문할 수 있습니다.", limit)
}

func searchResultsMessage(n int) string {
	return fmt.Sprintf("검색 결과: %d개의 상품을 찾았습니다.", n)
}

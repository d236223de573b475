package site

import (
	"errors"
	"net/http"

	"baro_site_server/internal/relay"
	"baro_site_server/internal/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgMissingFields = "모든 항목을 입력해 주세요."
	msgRelayRejected = "전송에 실패했습니다. 잠시 후 다시 시도해 주세요."
	msgContactFailed = "전송 중 오류가 발생했습니다."
)

type valueItem struct {
	Icon        string
	Title       string
	Description string
}

type serviceItem struct {
	Emoji       string
	Title       string
	Description string
}

type assuranceItem struct {
	Title       string
	Description string
}

var coreValues = []valueItem{
	{"Zap", "신속성", "요청 즉시 근처 매니저가 배정되어 가장 빠른 길로 달려갑니다."},
	{"ShieldCheck", "정확성", "요구사항을 꼼꼼히 체크하여 실수 없는 완벽한 처리를 약속합니다."},
	{"CheckCircle2", "신뢰성", "검증된 전문 매니저들이 고객님의 프라이버시를 철저히 보호합니다."},
}

var services = []serviceItem{
	{"🛍️", "구매 대행", "음식 배달부터 한정판 굿즈 대기, 마트 장보기까지 무엇이든 대신 구매해 드립니다."},
	{"🚚", "배달 및 전달", "급하게 전달해야 하는 서류, 깜빡하고 두고 온 열쇠 등을 신속하게 배송합니다."},
	{"🎟️", "예약 및 줄서기", "맛집 오픈런, 병원 접수, 공연 티켓팅 등 시간 소모가 큰 업무를 대신합니다."},
	{"🐾", "반려동물 케어", "바쁜 주인님을 대신해 소중한 아이들의 산책과 간식을 챙겨 드립니다."},
	{"🏠", "가사 업무 지원", "쓰레기 분리수거, 간단한 가구 옮기기, 전등 교체 등 손길이 필요한 곳을 돕습니다."},
	{"✨", "기타 맞춤 서비스", "고객님의 상황에 맞는 특별한 요청도 유연하게 대응합니다."},
}

var assurances = []assuranceItem{
	{"실시간 위치 확인", "배정된 매니저의 위치를 실시간으로 확인 가능합니다."},
	{"투명한 비용 산정", "거리에 따른 명확한 기준에 의해 비용을 산정합니다."},
	{"안전 보상 제도", "서비스 과정에서 발생하는 문제에 대해 책임지고 대응합니다."},
}

func (h *Handler) Home(c *gin.Context) {
	view := h.newView(types.PageHome)
	view.Values = coreValues
	h.render(c, http.StatusOK, string(types.PageHome), view)
}

func (h *Handler) Services(c *gin.Context) {
	view := h.newView(types.PageServices)
	view.Services = services
	view.Assurance = assurances
	h.render(c, http.StatusOK, string(types.PageServices), view)
}

func (h *Handler) RequestForm(c *gin.Context) {
	h.render(c, http.StatusOK, string(types.PageRequest), h.newView(types.PageRequest))
}

func (h *Handler) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, string(types.PageContact), h.newView(types.PageContact))
}

// Page serves /page/:page for any known PageType.
func (h *Handler) Page(c *gin.Context) {
	page, ok := types.ParsePageType(c.Param("page"))
	if !ok {
		h.NotFound(c)
		return
	}
	switch page {
	case types.PageServices:
		h.Services(c)
	case types.PageRequest:
		h.RequestForm(c)
	case types.PageContact:
		h.ContactForm(c)
	default:
		h.Home(c)
	}
}

func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "notfound", h.newView(""))
}

// SubmitRequest relays the errand form. Entered values survive every
// failure so the visitor can retry.
func (h *Handler) SubmitRequest(c *gin.Context) {
	view := h.newView(types.PageRequest)

	var form types.RequestFormData
	if err := c.ShouldBind(&form); err != nil {
		view.Request = form
		view.Error = msgMissingFields
		h.render(c, http.StatusBadRequest, string(types.PageRequest), view)
		return
	}
	view.Request = form

	if err := h.relay.Submit(c.Request.Context(), relay.NewErrandRequest(form)); err != nil {
		h.logger.Warn("errand request relay failed", zap.Error(err))
		if errors.Is(err, relay.ErrRejected) {
			view.Error = msgRelayRejected
		} else {
			view.Error = err.Error()
		}
		h.render(c, http.StatusBadGateway, string(types.PageRequest), view)
		return
	}

	h.logger.Info("errand request submitted")
	view.Request = types.RequestFormData{}
	view.Submitted = true
	h.render(c, http.StatusOK, string(types.PageRequest), view)
}

// SubmitContact relays the inquiry form. Any settled HTTP response counts as
// delivered; only a transport failure is reported.
func (h *Handler) SubmitContact(c *gin.Context) {
	view := h.newView(types.PageContact)

	var form types.ContactFormData
	if err := c.ShouldBind(&form); err != nil {
		view.Contact = form
		view.Error = msgMissingFields
		h.render(c, http.StatusBadRequest, string(types.PageContact), view)
		return
	}

	err := h.relay.Submit(c.Request.Context(), relay.NewContactMessage(form))
	if err != nil && !errors.Is(err, relay.ErrRejected) {
		h.logger.Warn("contact relay failed", zap.Error(err))
		view.Alert = msgContactFailed
		h.render(c, http.StatusBadGateway, string(types.PageContact), view)
		return
	}
	if err != nil {
		h.logger.Info("contact relay returned non-success status, treating as delivered", zap.Error(err))
	}

	view.Submitted = true
	h.render(c, http.StatusOK, string(types.PageContact), view)
}

package api

import (
	"errors"
	"net/http"

	"github.com/coinwatch/coins-proxy/coingecko"
)

// handleCoins serves GET /coins?acronyms=btc,eth with cached upstream data
func (s *Server) handleCoins(w http.ResponseWriter, r *http.Request) {
	acronyms := r.URL.Query().Get("acronyms")
	ids := splitParamLowercase(acronyms)
	if len(ids) == 0 {
		s.sendJSONError(w, http.StatusBadRequest, `Missing "acronyms" parameter`)
		return
	}

	records, cacheStatus, err := s.coinsService.GetCoins(r.Context(), ids)
	if err != nil {
		s.sendJSONError(w, upstreamErrorStatus(err), err.Error())
		return
	}

	s.setCacheStatusHeader(w, cacheStatus.String())
	s.sendJSONResponse(w, records)
}

// upstreamErrorStatus maps fetch errors to response status codes
func upstreamErrorStatus(err error) int {
	var retrievalErr *coingecko.RetrievalError
	var malformedErr *coingecko.MalformedResponseError
	if errors.As(err, &retrievalErr) || errors.As(err, &malformedErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

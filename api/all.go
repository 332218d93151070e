package api

import (
	"net/http"

	"supergrid/business"
	"supergrid/foundation"
)

// All registers all HTTP routes for the aggregation service.
func All() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/aggregate", foundation.WrapMiddleware(http.HandlerFunc(aggregateHandler),
		foundation.RequireMethod(http.MethodPost),
		foundation.RequireJSONContentType,
	))

	return mux
}

func aggregateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// ----------------------------------------------------------------------------
	// Validate Request

	type aggregatePayload struct {
		Table        TablePayload       `json:"table"`
		Supernodes   []SupernodePayload `json:"supernodes"`
		Strategy     string             `json:"strategy"`
		Op           string             `json:"op"`
		GroupBy      []string           `json:"group_by"`
		ValueColumn  string             `json:"value_column"`
		Transmission bool               `json:"transmission"`
	}
	payload, err := foundation.Decode[aggregatePayload](w, r)
	if err != nil {
		foundation.Respond(w, http.StatusBadRequest, newErrResp("invalid aggregate payload"))
		return
	}

	op, err := business.ParseOp(payload.Op)
	if err != nil {
		foundation.Respond(w, http.StatusBadRequest, newErrResp(err.Error()))
		return
	}

	tbl, err := payload.Table.table()
	if err != nil {
		foundation.Respond(w, http.StatusBadRequest, newErrResp(err.Error()))
		return
	}

	// Payload order becomes resolution order.
	supernodes := make(business.SupernodeMap, len(payload.Supernodes))
	for i, s := range payload.Supernodes {
		supernodes[i] = business.Supernode{Name: s.Name, Nodes: s.Nodes}
	}

	var strategy business.Strategy
	switch payload.Strategy {
	case "vertical":
		strategy = business.VerticalAggregation{
			GroupBy:      payload.GroupBy,
			ValueColumn:  payload.ValueColumn,
			Transmission: payload.Transmission,
		}
	case "horizontal":
		strategy = business.HorizontalAggregation{Aliases: getAliases(ctx)}
	default:
		foundation.Respond(w, http.StatusBadRequest, newErrResp("strategy must be vertical or horizontal"))
		return
	}

	// ---------------------------------------------------------------------------
	// Process Request

	// Reductions are deterministic over the request payload, so every
	// failure here is the client's input, not the server's state.
	result, err := strategy.Reduce(op, tbl, supernodes)
	if err != nil {
		foundation.Respond(w, http.StatusBadRequest, newErrResp(err.Error()))
		return
	}

	foundation.Respond(w, http.StatusOK, payloadFromTable(result))
}

package misc

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/2beens/fitinsights/internal/telemetry/tracing"
	"github.com/2beens/fitinsights/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type tableStats interface {
	Stats() map[string]int
}

type Handler struct {
	tables      tableStats
	versionInfo string
	startedAt   time.Time
}

func NewHandler(tables tableStats, versionInfo string) *Handler {
	return &Handler{
		tables:      tables,
		versionInfo: versionInfo,
		startedAt:   time.Now(),
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/myip", handler.handleGetMyIp).Methods("GET").Name("myip")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/stats", handler.handleGetStats).Methods("GET", "OPTIONS").Name("stats")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetMyIp(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.getMyIp")
	defer span.End()

	ip := pkg.ClientIP(r)
	if ip == "" {
		span.SetStatus(codes.Error, "no client ip")
		log.Errorf("failed to get user IP address from [%s]", r.RemoteAddr)
		http.Error(w, "failed to get IP", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("user.ip", ip))
	pkg.WriteTextResponseOK(w, ip)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

type tableRows struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

type statsResponse struct {
	Version       string      `json:"version"`
	UptimeSeconds int64       `json:"uptimeSeconds"`
	Tables        []tableRows `json:"tables"`
}

// handleGetStats lists the loaded tables with their row counts, sorted by table name.
func (handler *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.stats")
	defer span.End()

	resp := statsResponse{
		Version:       handler.versionInfo,
		UptimeSeconds: int64(time.Since(handler.startedAt).Seconds()),
		Tables:        []tableRows{},
	}
	for name, rows := range handler.tables.Stats() {
		resp.Tables = append(resp.Tables, tableRows{Table: name, Rows: rows})
	}
	sort.Slice(resp.Tables, func(i, j int) bool {
		return resp.Tables[i].Table < resp.Tables[j].Table
	})
	span.SetAttributes(attribute.Int("tables.count", len(resp.Tables)))

	respJson, err := json.Marshal(resp)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("marshal stats: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

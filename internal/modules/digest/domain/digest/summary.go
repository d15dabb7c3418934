package digest

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	telemetryEntity "FleetOps/internal/modules/telemetry/domain/entity"
	"FleetOps/internal/modules/trend/domain/action"
)

// Summary 一次摘要的聚合结果，站内通知与邮件共用同一份文本
type Summary struct {
	DateKey       string
	Total         int
	OpenCount     int
	InReviewCount int
	ByActionType  map[string]int
	TopAssets     []TopAsset
	Title         string
	Lines         []string
}

// AssetRefs 需要解析名称的资产
func AssetRefs(actions []action.TrendAction) []telemetryEntity.AssetRef {
	seen := make(map[telemetryEntity.AssetRef]struct{}, len(actions))
	refs := make([]telemetryEntity.AssetRef, 0, len(actions))
	for _, a := range actions {
		ref := telemetryEntity.AssetRef{Type: a.AssetType, ID: a.AssetID}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}

// Aggregate 统计 open / in_review 动作，resolved 的行会被忽略
func Aggregate(dateKey string, actions []action.TrendAction, labels map[telemetryEntity.AssetRef]telemetryEntity.AssetLabel, topN int) Summary {
	s := Summary{
		DateKey:      dateKey,
		ByActionType: map[string]int{},
	}
	perAsset := map[telemetryEntity.AssetRef]int{}
	for _, a := range actions {
		switch a.Status {
		case action.StatusOpen:
			s.OpenCount++
		case action.StatusInReview:
			s.InReviewCount++
		default:
			continue
		}
		s.Total++
		s.ByActionType[a.ActionType]++
		perAsset[telemetryEntity.AssetRef{Type: a.AssetType, ID: a.AssetID}]++
	}

	top := make([]TopAsset, 0, len(perAsset))
	for ref, n := range perAsset {
		t := TopAsset{AssetType: ref.Type, AssetID: ref.ID, Label: ref.ID, Count: n}
		if l, ok := labels[ref]; ok {
			if l.Name != "" {
				t.Label = l.Name
			}
			t.Status = l.Status
		}
		top = append(top, t)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		if top[i].Label != top[j].Label {
			return top[i].Label < top[j].Label
		}
		return top[i].AssetID < top[j].AssetID
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	s.TopAssets = top

	s.compose()
	return s
}

func (s *Summary) compose() {
	s.Title = fmt.Sprintf("Trend actions digest for %s: %d open, %d in review", s.DateKey, s.OpenCount, s.InReviewCount)
	if s.Total == 0 {
		s.Lines = []string{"no open trend actions"}
		return
	}
	lines := []string{
		fmt.Sprintf("Open: %d, In review: %d", s.OpenCount, s.InReviewCount),
		fmt.Sprintf("Asset health declines: %d, Mechanic declines: %d",
			s.ByActionType[action.TypeAssetHealthDecline], s.ByActionType[action.TypeMechanicDecline]),
	}
	if len(s.TopAssets) > 0 {
		lines = append(lines, "Top affected assets:")
		for i, t := range s.TopAssets {
			desc := t.AssetType
			if t.Status != "" {
				desc += ", " + t.Status
			}
			unit := "actions"
			if t.Count == 1 {
				unit = "action"
			}
			lines = append(lines, fmt.Sprintf("%d. %s (%s): %d %s", i+1, t.Label, desc, t.Count, unit))
		}
	}
	s.Lines = lines
}

func (s Summary) Body() string {
	return strings.Join(s.Lines, "\n")
}

func (s Summary) Severity() string {
	if s.OpenCount > 0 {
		return SeverityWarning
	}
	return SeverityInfo
}

var emailTemplate = template.Must(template.New("digest").Parse(`<!doctype html>
<html><body style="font-family:Arial,sans-serif;font-size:14px;color:#1f2933">
<h2 style="font-size:18px">{{.Title}}</h2>
{{range .Lines}}<p style="margin:4px 0">{{.}}</p>
{{end}}{{if .AppURL}}<p style="margin-top:16px"><a href="{{.AppURL}}">Open FleetOps</a></p>{{end}}
</body></html>`))

// HTML 邮件正文，文本内容与站内通知一致
func (s Summary) HTML(appURL string) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		Title  string
		Lines  []string
		AppURL string
	}{Title: s.Title, Lines: s.Lines, AppURL: appURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

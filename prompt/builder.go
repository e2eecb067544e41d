// Package prompt builds the single structured-generation request sent to the
// LLM for one press release.
package prompt

import (
	"fmt"
	"strings"

	"press-lens/models"
)

// Role 는 대화 턴의 화자다.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn 은 provider 에 전달되는 대화 한 턴이다.
type Turn struct {
	Role Role
	Text string
}

// Attachment 는 모델에 함께 보내는 이미지 바이트다.
type Attachment struct {
	Data     []byte
	MIMEType string
}

// Input 은 프롬프트 구성 재료다.
type Input struct {
	Title      string
	Paragraphs []string
	Image      *models.ImageData
	Persona    string
	// ImageNote 는 이미지 취득 실패 등 모델에 알려야 할 메모다.
	ImageNote  string
	Attachment *Attachment
}

// Request 는 완성된 생성 요청이다. Build 이후 변경하지 않는다.
type Request struct {
	Title          string
	System         string
	User           string
	Schema         models.FieldSpec
	ParagraphCount int
	Paragraphs     []string
	Image          *Attachment
}

const systemInstruction = `あなたは日本の広報・PR分野におけるトップ専門家です。
提示されたプレスリリースを、メディアが取り上げやすい「メディアフック」の観点から評価し、改善提案を行ってください。

# メディアフック（9項目、すべて必ず1回ずつ評価すること）
%s
# 採点基準（score は1〜5の整数）
1: 要素がまったくない
2: 要素はあるが弱い
3: 平均的
4: 明確で強い
5: 非常に優れており、そのまま記事の見出しになる

# 出力ルール
- media_hook_evaluations には上記9つの hook_type をそれぞれ正確に1回ずつ含めること。
- paragraph_improvements には提示されたすべての段落について1件ずつ含め、paragraph_index は提示された段落番号（0から始まる連番）と一致させること。
- original_text には該当段落の本文を一字一句そのまま転記すること。
- current_elements には本文から引用した語句のみを入れること。
- priority は high / medium / low のいずれか。
- 出力は指定されたJSONスキーマに従うJSONオブジェクト1つだけとし、Markdownのコードブロックで囲まないこと。
`

func hookList() string {
	var b strings.Builder
	for _, h := range models.AllHooks() {
		fmt.Fprintf(&b, "- %s（%s）: %s\n", h.Type, h.NameJA, h.Rubric)
	}
	return b.String()
}

// Build 는 입력으로부터 생성 요청을 만든다. 제목과 본문이 모두 비어 있으면 ValidationError.
func Build(in Input) (*Request, error) {
	title := strings.TrimSpace(in.Title)
	hasParagraph := false
	for _, p := range in.Paragraphs {
		if strings.TrimSpace(p) != "" {
			hasParagraph = true
			break
		}
	}
	if title == "" && !hasParagraph {
		return nil, models.NewValidationError("content", "title and content are both empty")
	}

	persona := strings.TrimSpace(in.Persona)
	if persona == "" {
		persona = models.DefaultPersona
	}

	paragraphs := make([]string, len(in.Paragraphs))
	copy(paragraphs, in.Paragraphs)
	schema := models.AnalysisSchema(len(paragraphs))

	var b strings.Builder
	b.WriteString("# 分析対象プレスリリース\n")
	fmt.Fprintf(&b, "## タイトル: %s\n", title)
	fmt.Fprintf(&b, "## ターゲットペルソナ: %s\n", persona)
	fmt.Fprintf(&b, "## 本文（%d段落）:\n", len(paragraphs))
	if len(paragraphs) == 0 {
		b.WriteString("本文がありません。paragraph_improvements は空配列にしてください。\n")
	}
	for i, p := range paragraphs {
		fmt.Fprintf(&b, "--- 段落 %d ---\n%s\n", i, p)
	}

	if in.Image != nil && (in.Image.URL != "" || in.Image.AltText != "") {
		b.WriteString("## トップ画像\n")
		if in.Image.URL != "" {
			fmt.Fprintf(&b, "- URL: %s\n", in.Image.URL)
		}
		if in.Image.AltText != "" {
			fmt.Fprintf(&b, "- 代替テキスト: %s\n", in.Image.AltText)
		}
	}
	if in.ImageNote != "" {
		fmt.Fprintf(&b, "- %s\n", in.ImageNote)
	}

	fmt.Fprintf(&b, "\n# 出力スキーマ\nparagraph_improvements はちょうど%d件、paragraph_index は0〜%d を1回ずつ使用すること。\n",
		len(paragraphs), max(len(paragraphs)-1, 0))
	b.WriteString(RenderSchema(schema))

	return &Request{
		Title:          title,
		System:         fmt.Sprintf(systemInstruction, hookList()),
		User:           b.String(),
		Schema:         schema,
		ParagraphCount: len(paragraphs),
		Paragraphs:     paragraphs,
		Image:          in.Attachment,
	}, nil
}

// Turns 는 최초 시도의 대화다.
func (r *Request) Turns() []Turn {
	return []Turn{{Role: RoleUser, Text: r.User}}
}

// RepairTurns 는 직전 출력과 위반 목록을 붙인 재시도 대화를 만든다.
// 이전 실패 이력은 누적하지 않고 직전 시도만 포함한다.
func (r *Request) RepairTurns(previousOutput string, violations []string) []Turn {
	turns := r.Turns()
	if strings.TrimSpace(previousOutput) != "" {
		turns = append(turns, Turn{Role: RoleModel, Text: previousOutput})
	}
	return append(turns, Turn{Role: RoleUser, Text: RepairNotice(violations)})
}

// RepairNotice 는 위반 사항을 모두 나열한 정정 요청문이다. 같은 입력이면 항상 같은 문자열을 만든다.
func RepairNotice(violations []string) string {
	var b strings.Builder
	b.WriteString("直前の出力は次の制約に違反していました。\n")
	for _, v := range violations {
		fmt.Fprintf(&b, "- %s\n", v)
	}
	b.WriteString("上記の違反箇所だけを修正し、それ以外の正しいフィールドは変更せずに、JSONオブジェクト全体をもう一度出力してください。")
	return b.String()
}

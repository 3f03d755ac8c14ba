package api

import (
	"net/http"

	"github.com/koilabs/koimbti/internal/services"
)

// POST /api/seed loads the built-in Japanese starter content: the twenty
// question items and a profile for each of the sixteen types. Idempotent
// in effect only for an empty store; re-seeding a populated store will
// duplicate rows, so the handler refuses when content already exists.
func (rt *Router) handleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if len(rt.store.ListQuestions(services.DefaultLocale)) > 0 {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "store already seeded"})
		return
	}
	for _, q := range seedQuestions() {
		rt.store.AddQuestion(q)
	}
	for _, pt := range seedTypes() {
		rt.store.AddPersonalityType(pt)
	}
	rt.log.Info("seed content loaded",
		"questions", len(seedQuestions()), "types", len(seedTypes()))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"questions": len(seedQuestions()),
		"types":     len(seedTypes()),
	})
}

func seedQuestions() []*Question {
	type item struct {
		number int
		axis   string
		text   string
		labelA string
		labelB string
		weight int
	}
	items := []item{
		{1, "EI", "気になる人がいたら、自分から話しかける方だ", "自分から話しかける", "相手から来るのを待つ", 1},
		{2, "EI", "デートの後は、一人の時間で気持ちを整理したい", "すぐ誰かに話したい", "一人で余韻に浸りたい", 1},
		{3, "EI", "恋愛の悩みは友達に相談してすっきりするタイプだ", "話して整理する", "自分の中で考える", 1},
		{4, "EI", "大人数の飲み会より、二人きりの時間の方が落ち着く", "大人数でわいわい", "二人きりでゆっくり", 1},
		{5, "EI", "初対面の相手とでも、沈黙が気にならない", "沈黙は埋めたい", "沈黙も心地よい", 2},
		{6, "SN", "将来の話をするとき、具体的な計画から考える", "具体的な計画から", "理想のイメージから", 1},
		{7, "SN", "相手の小さな変化（髪型や服装）によく気づく", "細かい変化に気づく", "全体の雰囲気で感じる", 1},
		{8, "SN", "記念日のプレゼントは実用的なものを選びがちだ", "実用的なもの", "意味やストーリー重視", 1},
		{9, "SN", "恋愛では「今この瞬間」を大事にしたい", "今を楽しむ", "未来を想像する", 1},
		{10, "SN", "相手の言葉は、そのままの意味で受け取る方だ", "言葉どおりに受け取る", "裏の意味を読む", 2},
		{11, "TF", "恋人の相談には、まず解決策を出したくなる", "解決策を考える", "気持ちに寄り添う", 1},
		{12, "TF", "けんかのとき、筋が通っているかが気になる", "筋が通っているか", "相手がどう感じたか", 1},
		{13, "TF", "好きかどうかより、合うかどうかで相手を見る", "条件や相性で判断", "ときめきで判断", 1},
		{14, "TF", "厳しい指摘でも、正しければ言うべきだと思う", "正しさを優先する", "傷つけない言い方を探す", 1},
		{15, "TF", "映画やドラマの恋愛シーンで泣くことは少ない", "あまり泣かない", "よく泣いてしまう", 2},
		{16, "JP", "デートは事前にプランを立てておきたい", "プランを立てたい", "その場の流れで決めたい", 1},
		{17, "JP", "連絡の返事は、できるだけ早く返すタイプだ", "すぐ返したい", "気が向いたときに返す", 1},
		{18, "JP", "付き合ったら、関係の節目をきちんと決めたい", "節目を決めたい", "自然な流れに任せたい", 1},
		{19, "JP", "旅行の荷造りは前日までに終わらせる", "前日までに準備", "当日ばたばた詰める", 1},
		{20, "JP", "予定が急に変わると、少しストレスを感じる", "変更はストレス", "変更もわくわくする", 2},
	}
	polesA := map[string]string{"EI": "E", "SN": "S", "TF": "T", "JP": "J"}
	polesB := map[string]string{"EI": "I", "SN": "N", "TF": "F", "JP": "P"}
	out := make([]*Question, 0, len(items))
	for _, it := range items {
		out = append(out, &Question{
			Number:       it.number,
			Axis:         it.axis,
			Locale:       "ja",
			Text:         it.text,
			OptionALabel: it.labelA,
			OptionBLabel: it.labelB,
			OptionAValue: polesA[it.axis],
			OptionBValue: polesB[it.axis],
			Weight:       it.weight,
			Active:       true,
		})
	}
	return out
}

func seedTypes() []*PersonalityType {
	type profile struct {
		mbti     string
		title    string
		subtitle string
		basic    string
		love     string
		partner  string
		advice   string
		keywords []string
	}
	profiles := []profile{
		{"ESTP", "スリルを楽しむ冒険家", "恋もスピード勝負", "行動力があり、その場の空気を一瞬でつかむタイプです。", "駆け引きを楽しみ、刺激的なデートで距離を縮めます。", "一緒に動ける、フットワークの軽い相手。", "落ち着いた時間も意識的に作ると長続きします。", []string{"行動力", "刺激", "現在志向"}},
		{"ESTJ", "頼れるリーダー", "愛もきちんと管理", "責任感が強く、約束を必ず守るタイプです。", "交際は真剣そのもの。将来を見据えて関係を築きます。", "誠実で、計画を共有できる相手。", "正しさより気持ちを先に受け止めると衝突が減ります。", []string{"責任感", "計画", "誠実"}},
		{"ESFP", "場を明るくするエンターテイナー", "恋はいつも全力", "人を楽しませることが大好きな、天性のムードメーカーです。", "サプライズや記念日を盛大に祝うのが得意です。", "一緒に笑ってくれる、ノリのよい相手。", "楽しさだけでなく、深い話をする日も作りましょう。", []string{"社交的", "楽観", "サプライズ"}},
		{"ESFJ", "みんなの世話焼き", "尽くす愛の達人", "周囲への気配りを欠かさない、思いやりの人です。", "相手の好みを細かく覚え、先回りして支えます。", "感謝をきちんと言葉にしてくれる相手。", "尽くしすぎて疲れる前に、自分の希望も伝えましょう。", []string{"気配り", "献身", "調和"}},
		{"ENTP", "議論好きの発明家", "恋も知的ゲーム", "新しいアイデアと会話の応酬を楽しむタイプです。", "気の利いた軽口の応酬から恋が始まります。", "対等に議論を楽しめる、頭の回転が速い相手。", "勝ち負けにこだわると、相手の心が離れます。", []string{"機知", "好奇心", "議論"}},
		{"ENTJ", "野心あふれる指揮官", "恋愛も戦略的に", "目標を定めたら一直線の、生まれながらのリーダーです。", "アプローチは大胆かつ計画的。主導権を握りたがります。", "自分の世界を持った、自立した相手。", "相手のペースに合わせる余白を残しましょう。", []string{"野心", "決断力", "主導"}},
		{"ENFP", "自由な空想家", "恋に恋する情熱家", "好奇心のかたまりで、人の可能性を信じるタイプです。", "恋に落ちるのは一瞬。情熱的なメッセージを惜しみません。", "夢を一緒に語れる、心の広い相手。", "熱が冷めたときこそ、関係を育てる本番です。", []string{"情熱", "想像力", "自由"}},
		{"ENFJ", "導き上手な世話人", "愛で人を育てる", "人の成長を自分のことのように喜べるタイプです。", "相手の話を深く聴き、惜しみなく応援します。", "感情を素直に表現してくれる相手。", "与えるばかりでなく、受け取る練習も必要です。", []string{"共感", "励まし", "カリスマ"}},
		{"ISTP", "クールな職人", "不器用だけど一途", "口数は少ないものの、手を動かせば何でもこなす器用さんです。", "言葉より行動で愛情を示します。修理や送迎はお手のもの。", "べたべたしない、程よい距離感の相手。", "たまには気持ちを言葉にすると安心してもらえます。", []string{"冷静", "器用", "マイペース"}},
		{"ISTJ", "堅実な努力家", "真面目一筋の愛", "コツコツ型で、決めたことを最後までやり抜くタイプです。", "交際は結婚を見据えた真剣勝負。浮ついた話は苦手です。", "生活リズムの合う、堅実な相手。", "予定外のデートも、案外よい思い出になります。", []string{"堅実", "忠実", "継続"}},
		{"ISFP", "静かな芸術家", "ひかえめな愛情表現", "感受性が豊かで、美しいものに心を動かされるタイプです。", "好きな気持ちは態度ににじみ出るタイプ。押しは弱めです。", "ゆっくり距離を縮めてくれる、穏やかな相手。", "我慢がたまる前に、小さな不満を口に出しましょう。", []string{"感受性", "優しさ", "控えめ"}},
		{"ISFJ", "縁の下の守り人", "支える愛のプロ", "目立たないところで人を支えることに喜びを感じます。", "相手の体調や予定を細かく覚え、そっと支えます。", "小さな気遣いに気づいてくれる相手。", "頼ることは迷惑ではなく、信頼の証です。", []string{"献身", "記憶力", "安定"}},
		{"INTP", "探求する論理学者", "恋は未知の研究対象", "興味を持ったことをとことん掘り下げる思索家です。", "好意の伝え方を理屈で考えすぎて、タイミングを逃しがち。", "知的な会話が続く、束縛しない相手。", "完璧な告白プランより、まず一歩踏み出すことです。", []string{"分析", "独創", "探求"}},
		{"INTJ", "静かな戦略家", "恋愛も長期計画", "独自の構想を胸に、着実に歩を進めるタイプです。", "軽い恋には興味がなく、見極めてから深く愛します。", "知的で、互いの領域を尊重できる相手。", "計画どおりに進まない恋も、味わう価値があります。", []string{"戦略", "独立", "洞察"}},
		{"INFP", "夢見る理想主義者", "運命の恋を信じて", "自分の価値観を大切にする、心優しい夢想家です。", "理想の恋を思い描き、一度好きになると一途です。", "価値観の核が重なる、誠実な相手。", "理想と現実の差も、二人で埋めれば物語になります。", []string{"理想", "一途", "想像"}},
		{"INFJ", "物静かな助言者", "深くつながる愛", "少数の人と深くつながることを望む、洞察の人です。", "表面的な駆け引きを嫌い、心の対話を求めます。", "沈黙を共有できる、精神的に成熟した相手。", "察してもらうのを待たず、言葉でも伝えましょう。", []string{"洞察", "深さ", "静けさ"}},
	}
	out := make([]*PersonalityType, 0, len(profiles))
	for _, p := range profiles {
		code, _ := services.MBTIToCode(p.mbti)
		out = append(out, &PersonalityType{
			MBTIType:            p.mbti,
			Locale:              "ja",
			Title:               p.title,
			Subtitle:            p.subtitle,
			TypeCode:            code,
			BasicPersonality:    p.basic,
			LoveCharacteristics: p.love,
			SuitablePartner:     p.partner,
			MatchingAdvice:      p.advice,
			Keywords:            p.keywords,
			Active:              true,
		})
	}
	return out
}

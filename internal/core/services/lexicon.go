package services

// DefaultPolicyLexicon returns the standard Korean policy-intensity
// lexicon. Weights reflect how strongly a term signals a consequential
// policy event in a headline.
func DefaultPolicyLexicon() map[string]float64 {
	return map[string]float64{
		// Urgency and crisis
		"위기": 1.0, "긴급": 1.0, "비상": 1.0, "사태": 1.0,
		"폭발": 0.9, "전격": 0.9, "전면": 0.9, "강행": 0.9,
		// Legislative and institutional change
		"개정": 0.9, "폐지": 0.9, "추가": 0.8, "강화": 0.8,
		"신설": 0.8, "철회": 0.8, "입법": 0.8, "승인": 0.7,
		"거부": 0.7, "시행": 0.7, "시범": 0.6, "확대": 0.6,
		"축소": 0.6, "연기": 0.6, "유예": 0.6,
		// Budget and execution
		"예산": 1.0, "추경": 0.9, "배정": 0.8, "집행": 0.8,
		"재정": 0.7, "투입": 0.7, "지원": 0.6, "교부": 0.6,
		// Oversight and evaluation
		"감사": 0.8, "국정감사": 0.8, "감독": 0.7, "모니터링": 0.6,
		"평가": 0.6, "성과": 0.6, "보고": 0.5,
		// Deliberation
		"논의": 0.7, "토론": 0.7, "공청회": 0.7, "쟁점": 0.7,
		"의견수렴": 0.6, "포럼": 0.5,
		// Conflict and pushback
		"반발": 0.6, "항의": 0.6, "갈등": 0.6, "논란": 0.8,
		// Disclosure
		"발표": 0.5, "공표": 0.5, "공개": 0.5, "언론브리핑": 0.5,
		// Other signals
		"파행": 0.9, "충격": 0.8, "심각": 0.8, "비판": 0.7,
		"우려": 0.6, "이행": 0.6, "제안": 0.5, "헌의": 0.5,
		"협의": 0.5, "협약": 0.5,
	}
}

// DefaultIncludeKeywords returns the education-topic include lexicon
// applied by the Normalizer's topic filter.
func DefaultIncludeKeywords() []string {
	return []string{
		// Schools and classrooms
		"초등", "중등", "고등", "초중고", "초등학교", "중학교", "고등학교",
		"교실", "학급", "담임", "교사", "스쿨존", "하교", "등교",
		"학부모", "교장", "교감", "학교급식", "학교폭력", "교내",
		// Policy and administration
		"교육청", "교육부", "교육감", "교육정책", "교육재정",
		"교육과정", "교과과정", "교재", "교과서",
		// Students, learning, assessment
		"학생", "학생상담", "학생생활", "학습", "기초학력", "학업성취도",
		"평가", "교육평가", "내신", "수능", "대입", "입시",
		// Classroom innovation
		"수업", "원격수업", "온라인수업", "스마트교실", "에듀테크",
		"디지털교과서", "코딩교육", "SW교육", "ICT교육",
		// Early childhood and care
		"유치원", "어린이집", "누리과정", "돌봄교실", "방과후학교",
		"돌봄서비스", "방학", "학기", "방학중교실",
		// Welfare and scholarships
		"교육복지", "무상교육", "무상급식", "교육급여",
		"장학금", "학비지원", "학생복지", "교육지원",
		// Special and multicultural education
		"특수교육", "장애학생", "통합교육", "다문화", "다문화교육",
		// Research and innovation schools
		"혁신학교", "연구학교", "선도학교",
		// Facilities and safety
		"교육환경", "시설개선", "노후교실", "교실환경", "그린스마트스쿨",
		"체육관", "음악실", "미술실", "급식재료", "학교시설",
		"학교안전", "안전교육", "통학버스", "교통안전",
		// Health
		"보건실", "건강검진", "응급처치", "감염병", "코로나", "독감", "예방접종",
		// Private education
		"학원", "사교육",
		// Gifted education
		"영재교육", "창의교육",
		// Staffing and operations
		"교원", "교원연수", "교원채용", "교원수급", "교원충원",
		"교내활동", "교외활동", "학교행정", "교무학사", "학교운영",
	}
}

// DefaultExcludeKeywords returns the off-topic exclude lexicon applied
// by the Normalizer's topic filter.
func DefaultExcludeKeywords() []string {
	return []string{
		// Politics and investigations
		"소환조사", "압수수색", "기소", "구속영장", "공소시효",
		"특활비", "청탁금지법", "검찰조사", "위증", "직권남용",
		"정계개편", "공천", "총선", "대선", "청문회", "보궐선거",
		"야당", "여당", "당대표",
		// Urban development and transit
		"도로확장", "재건축", "지하차도", "아파트분양",
		"산업단지", "택지개발", "건설수주", "용적률", "역세권개발",
		"교통정비",
		// Entertainment
		"연예인", "아이돌", "드라마", "뮤직비디오", "콘서트",
		"팬미팅", "티저공개", "예능", "앨범발매",
		// Foreign affairs, defence, macro economy
		"북핵", "군사훈련", "국방부", "무역적자", "환율",
		"금리인상", "반도체수출", "기준금리", "유가", "외환보유액",
		// Non-education welfare
		"기초생활수급", "긴급복지", "생계급여", "간병서비스",
		"노인복지관", "돌봄로봇", "활동보조", "주거급여",
		"요양보호사", "기초연금", "노인일자리", "평생교육",
		// Youth housing policy
		"청년월세지원", "전세대출", "공공임대", "청년정책",
		"신혼희망타운", "LH청약", "청년취업지원금", "청년창업센터",
		// Health-system response outside schools
		"백신접종", "병상확보", "의료진지원", "코로나입원",
		"환자이송", "중환자병상", "응급의료법", "의사협회",
		"방역인력",
		// Labour disputes
		"임단협", "노조파업", "근로시간단축", "고용유지지원금",
		"노사정협의", "단체협약", "공공기관채용", "산업인력공단",
		// Crime briefs
		"뺑소니", "보복운전", "치안유지", "경찰수사",
		// Miscellaneous
		"종교행사", "성지순례", "스포츠단신", "은퇴발표",
		"골프우승", "국가대표선발", "개인사", "가족사",
	}
}

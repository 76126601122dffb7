package prompt

import "smartcommit/cli/internal/lang"

// Section names one piece of fixed prompt text.
type Section int

const (
	intro Section = iota
	repoHeader
	repoName
	branchName
	recentHeader
	noCommits
	changesHeader
	fileStatusHeader
	diffHeader
	submodulesHeader
	submoduleUpdated
	submoduleNoSubjects
	rulesHeader
	ruleTense
	ruleSummary
	ruleBlankLine
	ruleWhy
	ruleIssues
	optionsInstruction
	singleInstruction
	optionLabel
	optionMarker
	mergeIntro
	mergeCandidate
	mergeRequest
	mergeOutput
	reviseIntro
	transcriptHeader
	roleSystem
	roleAssistant
	roleUser
	currentHeader
	reviseRequest
	reviseOutput
)

type key struct {
	lang    lang.Language
	section Section
}

// _text holds every fixed prompt string. Entries with verbs are format strings.
var _text = map[key]string{
	{lang.English, intro}:               "Write a professional commit message that follows best practices for the Git changes below.",
	{lang.English, repoHeader}:          "Repository information:",
	{lang.English, repoName}:            "Repository: %s",
	{lang.English, branchName}:          "Branch: %s",
	{lang.English, recentHeader}:        "Recent commits:",
	{lang.English, noCommits}:           "(no commits yet)",
	{lang.English, changesHeader}:       "Changes:",
	{lang.English, fileStatusHeader}:    "Staged files:",
	{lang.English, diffHeader}:          "Staged diff:",
	{lang.English, submodulesHeader}:    "Submodule changes:",
	{lang.English, submoduleUpdated}:    "Submodule %s updated (%s..%s):",
	{lang.English, submoduleNoSubjects}: "(commit list unavailable)",
	{lang.English, rulesHeader}:         "The commit message should:",
	{lang.English, ruleTense}:           "1. Use the present tense",
	{lang.English, ruleSummary}:         "2. Start with a short summary line (50 characters or less)",
	{lang.English, ruleBlankLine}:       "3. Leave one blank line before the detailed description",
	{lang.English, ruleWhy}:             "4. Explain why the change was made, not how",
	{lang.English, ruleIssues}:          "5. Reference any related issue or ticket numbers",
	{lang.English, optionsInstruction}:  "Write %d different commit messages. Start each one on its own line with the label \"%s\" followed by its number, for example \"%s\".",
	{lang.English, singleInstruction}:   "Reply with the commit message only, in English.",
	{lang.English, optionLabel}:         "Option",
	{lang.English, optionMarker}:        "Option %d:",
	{lang.English, mergeIntro}:          "Combine the following commit message candidates into a single commit message.",
	{lang.English, mergeCandidate}:      "Candidate %d:",
	{lang.English, mergeRequest}:        "User request:",
	{lang.English, mergeOutput}:         "Keep what is accurate in each candidate and follow the same format rules. Reply with the final commit message only, in English.",
	{lang.English, reviseIntro}:         "You are helping refine a Git commit message.",
	{lang.English, transcriptHeader}:    "Conversation:",
	{lang.English, roleSystem}:          "System",
	{lang.English, roleAssistant}:       "Assistant",
	{lang.English, roleUser}:            "User",
	{lang.English, currentHeader}:       "Current commit message:",
	{lang.English, reviseRequest}:       "Revise the current commit message according to this request:",
	{lang.English, reviseOutput}:        "Reply with the revised commit message only, in English.",

	{lang.Chinese, intro}:               "请基于以下Git变更生成一个专业的、遵循最佳实践的commit message。",
	{lang.Chinese, repoHeader}:          "仓库信息:",
	{lang.Chinese, repoName}:            "仓库: %s",
	{lang.Chinese, branchName}:          "分支: %s",
	{lang.Chinese, recentHeader}:        "最近提交记录:",
	{lang.Chinese, noCommits}:           "无提交记录",
	{lang.Chinese, changesHeader}:       "变更内容:",
	{lang.Chinese, fileStatusHeader}:    "已暂存文件:",
	{lang.Chinese, diffHeader}:          "已暂存的差异:",
	{lang.Chinese, submodulesHeader}:    "Submodule变更:",
	{lang.Chinese, submoduleUpdated}:    "Submodule %s 更新 (%s..%s):",
	{lang.Chinese, submoduleNoSubjects}: "(无法获取提交列表)",
	{lang.Chinese, rulesHeader}:         "生成的commit message应该:",
	{lang.Chinese, ruleTense}:           "1. 使用现在时态",
	{lang.Chinese, ruleSummary}:         "2. 第一行是简短的摘要 (50个字符以内)",
	{lang.Chinese, ruleBlankLine}:       "3. 留一个空行后再写详细描述",
	{lang.Chinese, ruleWhy}:             "4. 详细描述应当解释为什么进行更改，而不是如何更改",
	{lang.Chinese, ruleIssues}:          "5. 引用任何相关问题或工单编号",
	{lang.Chinese, optionsInstruction}:  "请生成%d个不同的commit message。每个都另起一行，以\"%s\"加编号开头，例如\"%s\"。",
	{lang.Chinese, singleInstruction}:   "只输出commit message本身，使用中文。",
	{lang.Chinese, optionLabel}:         "选项",
	{lang.Chinese, optionMarker}:        "选项%d:",
	{lang.Chinese, mergeIntro}:          "请将以下几个commit message候选合并为一个commit message。",
	{lang.Chinese, mergeCandidate}:      "候选%d:",
	{lang.Chinese, mergeRequest}:        "用户要求:",
	{lang.Chinese, mergeOutput}:         "保留每个候选中准确的内容，并遵循相同的格式要求。只输出最终的commit message，使用中文。",
	{lang.Chinese, reviseIntro}:         "你正在帮助完善一个Git commit message。",
	{lang.Chinese, transcriptHeader}:    "对话记录:",
	{lang.Chinese, roleSystem}:          "系统",
	{lang.Chinese, roleAssistant}:       "助手",
	{lang.Chinese, roleUser}:            "用户",
	{lang.Chinese, currentHeader}:       "当前的commit message:",
	{lang.Chinese, reviseRequest}:       "请根据以下要求修改当前的commit message:",
	{lang.Chinese, reviseOutput}:        "只输出修改后的commit message，使用中文。",
}

// text returns the entry for (l, s), falling back to English.
func text(l lang.Language, s Section) string {
	if t, ok := _text[key{l, s}]; ok {
		return t
	}
	return _text[key{lang.English, s}]
}

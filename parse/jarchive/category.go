package jarchive

// 常规轮次固定有六个类别
const CategoryCount = 6

/*
输入线索格在本轮中的位置和本轮的类别列表，输出类别名称和是否找到

线索按行排列，位置对6取模即为所在列；类别数不足时返回false而不是越界
*/
func ResolveCategory(index int, categories []string) (string, bool) {
	if index < 0 {
		return "", false
	}
	i := index % CategoryCount
	if i >= len(categories) {
		return "", false
	}
	return categories[i], true
}

package glossary

// builtin is the RimWorld core terminology, English term to Simplified Chinese.
var builtin = map[string]string{
	"AI Kassandra":              "AI故事叙述者",
	"AI Persona Core":           "人工智能思维核心",
	"AI Storytellers":           "AI故事叙述者",
	"Addictiveness":             "成瘾性",
	"Advanced Weapons":          "高级武器",
	"Agave":                     "龙舌兰果",
	"Aiming Time":               "瞄准时间",
	"Allowed area":              "许可区域",
	"Alpaca":                    "羊驼",
	"Alpaca wool":               "羊驼毛",
	"Alpacahide":                "豚鼠皮",
	"Alphabeaver":               "阿尔法海狸",
	"Animal":                    "动物",
	"Animal bed":                "动物床铺",
	"Animal sleeping box":       "动物睡眠箱",
	"Animal sleeping spot":      "动物睡眠处",
	"Animals":                   "动物",
	"Architect Menu":            "建造",
	"Arctic fox":                "北极狐",
	"Arctic foxskin":            "北极狐皮",
	"Arctic wolf":               "北极狼",
	"Arctic wolfskin":           "北极狼皮",
	"Arid shrubland":            "旱带灌木从",
	"Armchair":                  "扶手椅",
	"Armor":                     "护甲",
	"Armor Categories":          "护甲种类",
	"Arms":                      "手臂",
	"Artillery shell":           "炮弹",
	"Assault Rifle":             "突击步枪",
	"Assignment":                "委派方案",
	"Auto-turret":               "无人机枪",
	"Autodoor":                  "自动门",
	"Backstories":               "背景故事",
	"Base":                      "殖民地",
	"Base Healing Quality":      "医疗能力",
	"Basics":                    "基础概念",
	"Battery":                   "蓄电池",
	"Bearskin":                  "熊皮",
	"Beauty":                    "美观",
	"Beaverskin":                "海狸皮",
	"Bed":                       "单人床",
	"Beer":                      "啤酒",
	"Berries":                   "浆果",
	"Billiards table":           "台球桌",
	"Bionic Arm":                "仿生臂",
	"Bionic Eye":                "仿生眼",
	"Bionic Leg":                "仿生腿",
	"Birch Tree":                "桦树",
	"Blue carpet":               "蓝色地毯",
	"Boar":                      "野猪",
	"Body Parts":                "身体部位",
	"Boomalope":                 "爆炸羊",
	"Boomalope leather":         "爆炸兽皮",
	"Boomrat":                   "爆炸鼠",
	"Brewery":                   "酿造台",
	"Brewing Speed":             "酿造速度",
	"Bush":                      "灌木",
	"Butcher table":             "屠宰台",
	"Butchery Efficiency":       "屠宰效率",
	"Butchery Speed":            "屠宰速度",
	"Camelhair":                 "骆驼毛",
	"Campfire":                  "篝火",
	"Capybara":                  "水豚",
	"Capybaraskin":              "水豚皮",
	"Caribou":                   "驯鹿",
	"Carpets":                   "地毯",
	"Cassandra Classic":         "「经典」卡桑德拉",
	"Cassowary":                 "鹤驼",
	"Centipede":                 "机械蜈蚣",
	"Character Types":           "生物",
	"Characters":                "角色属性",
	"Charge Lance":              "电荷标枪",
	"Chess table":               "象棋桌",
	"Chicken":                   "鸡",
	"Chinchilla":                "栗鼠",
	"Chinchilla fur":            "粟鼠皮",
	"Chocolate":                 "巧克力",
	"Chop Wood":                 "伐木",
	"Claim":                     "占有",
	"Cloth":                     "布",
	"Clothing":                  "衣服",
	"Club":                      "棍棒",
	"Cobra":                     "眼镜蛇",
	"Colonist":                  "殖民者",
	"Colonists":                 "殖民者",
	"Colony":                    "殖民地",
	"Combat":                    "战斗",
	"Comfort":                   "舒适",
	"Comms console":             "通讯台",
	"Construction Speed":        "建造速度",
	"Controls":                  "操作控制",
	"Cook stove":                "电动炉灶",
	"Cooking Speed":             "烹饪速度",
	"Cooler":                    "制冷机",
	"Corn":                      "玉米",
	"Cotton Plant":              "棉花（植株）",
	"Cougar":                    "美洲豹",
	"Cover":                     "掩护",
	"Cow":                       "奶牛",
	"Crafting spot":             "加工点",
	"Crematorium":               "焚化炉",
	"Cryptosleep casket":        "低温休眠舱",
	"DPS":                       "DPS",
	"Damage":                    "伤害",
	"Damage Types":              "伤害类型",
	"Daylily":                   "金针莱",
	"Deadfall trap":             "尖刺陷阱",
	"Debris":                    "碎石",
	"Deconstruct":               "拆除",
	"Deer":                      "鹿",
	"Deterioration":             "变质",
	"Devilstrand":               "魔菇布",
	"Dining chair":              "餐椅",
	"Disease":                   "疾病",
	"Door":                      "门",
	"EMP Grenade":               "EMP手榴弹",
	"Eating Speed":              "进食速度",
	"Electric crematorium":      "焚化炉",
	"Electric smelter":          "电动熔炼机",
	"Electric smithy":           "电动锻造台",
	"Electric tailoring bench":  "电动裁缝台",
	"Elephant":                  "大象",
	"Emu":                       "鸸鹋",
	"Environment":               "环境",
	"Events":                    "特殊事件",
	"Fabric":                    "纤维",
	"Fabrics":                   "纤维",
	"Feet":                      "脚部",
	"Fine Meal":                 "精致食物",
	"Fire":                      "火",
	"Firefighting":              "灭火",
	"Firefoam popper":           "泡沫灭火器",
	"Flammability":              "易燃性",
	"Floor":                     "地板",
	"Food":                      "食物",
	"Food Poison Chance":        "烹饪生毒几率",
	"Frag Grenades":             "破片手榴弹",
	"Fueled smithy":             "燃料锻造台",
	"Furniture":                 "家具",
	"Gameplay":                  "游戏机制",
	"Gazelle":                   "瞪羚",
	"Geothermal Generator":      "地热发电机",
	"Gladius":                   "短剑",
	"Glitterworld":              "闪耀世界",
	"Glitterworld Medicine":     "高级药物",
	"Global Learning Factor":    "全局学习能力",
	"Global Work Speed":         "全局工作速度",
	"Gold":                      "黄金",
	"Granite Blocks":            "花岗岩砖块",
	"Grass":                     "草",
	"Grave":                     "坟墓",
	"Great Bow":                 "长弓",
	"Grizzly Bear":              "灰熊",
	"Growing Zone":              "种植区",
	"Hand-tailoring bench":      "手工缝纫台",
	"Hands":                     "双手",
	"Happiness":                 "幸福",
	"Hare":                      "野兔",
	"Haul Things":               "搬运",
	"Hauling":                   "搬运",
	"Hay":                       "干草",
	"Healing Speed":             "医疗速度",
	"Healroot":                  "药草",
	"Health":                    "健康",
	"Heart":                     "心脏",
	"Heater":                    "加热器",
	"Heavy SMG":                 "重型冲锋枪",
	"Herbal Medicine":           "草药",
	"Home Region":               "居住区",
	"Home Zone":                 "居住区",
	"Hop Plant":                 "啤酒花（植株）",
	"Hopper":                    "进料口",
	"Hops":                      "啤酒花",
	"Horseshoe pins":            "掷马蹄铁",
	"Hospital bed":              "病床",
	"Human":                     "人类",
	"Human leather":             "人皮",
	"Hunt":                      "狩猎",
	"Husky":                     "哈士奇犬",
	"Hydroponics basin":         "无土栽培皿",
	"Hyperweave":                "超织物",
	"IED trap":                  "自制炸弹陷阱",
	"Ibex":                      "野山羊",
	"Iguana":                    "鬣蜥",
	"Immunity Gain Speed":       "免疫力获得速度",
	"Improvised Turret":         "简易机枪",
	"Incendiary Mortar":         "燃烧弹迫击炮",
	"Inferno Cannon":            "地狱火加农炮",
	"Injury":                    "伤势",
	"Jade":                      "翡翠",
	"Joy":                       "娱乐",
	"Kidney":                    "肾",
	"Knife":                     "匕首",
	"LMG":                       "轻机枪",
	"Labrador retriever":        "拉布拉多猎犬",
	"Large Sculpture":           "大雕塑",
	"Lavish Meal":               "奢侈食物",
	"Leather":                   "皮革",
	"Leathers":                  "皮革",
	"Legs":                      "腿部",
	"Limestone Blocks":          "石灰岩砖块",
	"Liver":                     "肝",
	"Log wall":                  "木墙",
	"Long Sword":                "长剑",
	"Lung":                      "肺",
	"Machining table":           "机械加工台",
	"Marble Blocks":             "大理石砖",
	"Market Value":              "市场价值",
	"Material":                  "材质",
	"Materials":                 "材质",
	"Max Hit Points":            "最大耐久度",
	"Meal":                      "熟食",
	"Meals":                     "熟食",
	"Meat":                      "肉类",
	"Mechanoid":                 "机械体",
	"Mechanoid Centipede":       "机械蜈蚣",
	"Mechanoid Scyther":         "机械螳螂",
	"Mechanoids":                "机械体",
	"Medical Items":             "医疗用品",
	"Medical Operation Speed":   "手术速度",
	"Medical Potency":           "医用效果",
	"Medicine":                  "药物",
	"Megascarab":                "巨型甲虫",
	"Megascreen Television":     "巨屏电视",
	"Megaspider":                "巨型蜘蛛",
	"Megatherium":               "大地懒",
	"Melee Hit Chance":          "近战攻击命中率",
	"Mental Break Threshold":    "崩溃临界值",
	"Metal tile":                "金属地砖",
	"Milk":                      "鲜奶",
	"Mine":                      "采矿",
	"Minigun":                   "速射机枪",
	"Mining Speed":              "开采速度",
	"Misc":                      "杂项",
	"Mood":                      "心情",
	"Mortar":                    "迫击炮",
	"Move Speed":                "移动速度",
	"Muffalo":                   "野牦牛",
	"Multi-analyzer":            "多元分析仪",
	"Need":                      "需求",
	"Needs":                     "需求",
	"Neolithic":                 "新石器",
	"Nutrient Paste Meal":       "营养糊",
	"Nutrient paste dispenser":  "营养糊供应机",
	"Oak Tree":                  "橡树",
	"Orders":                    "命令",
	"Ostrich":                   "鸵鸟",
	"PDW":                       "冲锋手枪",
	"Packaged Survival Meal":    "生存包装食品",
	"Pain":                      "痛感",
	"Panther":                   "黑豹",
	"Paved tile":                "铺装地砖",
	"Peg Leg":                   "假腿",
	"Pemmican":                  "肉脯",
	"People":                    "人",
	"Phoebe Chillax":            "「建筑师」菲比",
	"Pig":                       "猪",
	"Pila":                      "重标枪",
	"Pine Tree":                 "松树",
	"Pistol":                    "自动手枪",
	"Plague":                    "瘟疫",
	"Plan":                      "计划",
	"Planet":                    "星球",
	"Plant Work Speed":          "种植速度",
	"Plant pot":                 "花盆",
	"Plants":                    "植物",
	"Plasteel":                  "玻璃钢",
	"Polar bear":                "北极熊",
	"Poplar Tree":               "杨树",
	"Potato Plant":              "土豆（植株）",
	"Potatoes":                  "土豆",
	"Power":                     "电力",
	"Power Claw":                "动力爪",
	"Power conduit":             "电缆",
	"Power switch":              "电力开关",
	"Primitive":                 "原始",
	"Prisoner":                  "囚犯",
	"Production":                "生产",
	"Psychic Sensitivity":       "灵能敏感度",
	"Pump Shotgun":              "泵动霰弹枪",
	"Quality":                   "品质",
	"R-4 charge rifle":          "R4电荷步枪",
	"Raccoon":                   "浣熊",
	"Raider":                    "掠夺者",
	"Randy Random":              "「随机」兰迪",
	"Raw Food":                  "生食",
	"Recruit Prisoner Chance":   "招募囚犯几率",
	"Research":                  "研究",
	"Research Speed":            "研究速度",
	"Research bench":            "简易研究台",
	"Resources":                 "资源",
	"Rest":                      "休息",
	"Rest Effectiveness":        "休息效率",
	"Rhinoceros":                "犀牛",
	"Rice":                      "稻米",
	"Rifle":                     "步枪",
	"Room roles":                "房间功能",
	"Rose":                      "玫瑰",
	"Royal Bed":                 "豪华双人床",
	"Royalty":                   "皇权",
	"Rubble":                    "碎石",
	"SMG":                       "冲锋枪",
	"Sandbag":                   "沙袋",
	"Sandstone Blocks":          "砂岩砖",
	"Saturation":                "饱腹度",
	"Sculptor's table":          "雕刻台",
	"Sculptures":                "雕塑",
	"Scyther":                   "机械螳螂",
	"Scyther Blade":             "螳螂刀",
	"Security":                  "防卫",
	"Sell Price Multiplier":     "出售价格系数",
	"Shield Max Energy":         "护盾最大能量",
	"Shield Recharge Rate":      "护盾充能速度",
	"Ship":                      "飞船",
	"Ship computer core":        "飞船电脑核心",
	"Ship cryptosleep casket":   "飞船休眠舱",
	"Ship engine":               "飞船引擎",
	"Ship reactor":              "飞船反应堆",
	"Shooting Accuracy":         "射击精度",
	"Short Bow":                 "短弓",
	"Sickness":                  "疾病",
	"Silver":                    "白银",
	"Simple Meal":               "简易食物",
	"Simple Prosthetic Arm":     "简易假臂",
	"Simple Prosthetic Leg":     "简易假腿",
	"Skills":                    "技能",
	"Slate Blocks":              "板岩砖",
	"Sleeping Spot":             "睡眠点",
	"Small Sculpture":           "小雕塑",
	"Smelting Speed":            "熔炼速度",
	"Smithing Speed":            "锻造速度",
	"Smooth stone":              "光滑石板",
	"Smoothing Speed":           "打磨速度",
	"Sniper Rifle":              "狙击步枪",
	"Snowhare":                  "雪兔",
	"Social":                    "社交",
	"Social Chat Impact":        "社交影响",
	"Solar generator":           "太阳能板",
	"Spear":                     "矛",
	"Squirrel":                  "松鼠",
	"Standing Lamp":             "落地灯",
	"Steel":                     "钢铁",
	"Sterile tile":              "无菌地砖",
	"Stockpile zone":            "贮存区",
	"Stone Blocks":              "石块",
	"Stonecutting Speed":        "切石速度",
	"Stool":                     "凳子",
	"Strawberry Plant":          "草莓（植株）",
	"Structure":                 "结构",
	"Sun lamp":                  "太阳灯",
	"Surgery Success Chance":    "手术成功率",
	"Survival Rifle":            "幸存者步枪",
	"Synthread":                 "合成纤维",
	"T-9 Incendiary Launcher":   "燃烧弹发射器",
	"Table":                     "桌子",
	"Tailoring Speed":           "缝制速度",
	"Tall Grass":                "高草",
	"Temperature":               "温度",
	"Textiles":                  "纺织品",
	"Thoughts":                  "想法",
	"Thrumbo":                   "敲击兽",
	"Tick":                      "刻",
	"Time":                      "时间",
	"Tool cabinet":              "工具柜",
	"Torch lamp":                "火把",
	"Torso":                     "躯干",
	"Tortoise":                  "乌龟",
	"Trade":                     "贸易",
	"Trade Price Improvement":   "交易价格改善",
	"Trader":                    "商人",
	"Traits":                    "特性",
	"Trees":                     "树木",
	"Triple Rocket Launcher":    "三管火箭发射器",
	"Tube Television":           "显像管电视",
	"Tundra":                    "苔原",
	"Turkey":                    "火鸡",
	"Turret":                    "炮塔",
	"UI":                        "用户界面",
	"Uranium":                   "铀",
	"User interface":            "用户界面",
	"Vent":                      "通风口",
	"Version":                   "版本",
	"Vitals monitor":            "体征监测仪",
	"Wall":                      "墙",
	"Warg":                      "座狼",
	"Weapon":                    "武器",
	"Weapons":                   "武器",
	"Wild Plants":               "野生植物",
	"Wind Turbine":              "风力发电机",
	"Wood":                      "木材",
	"Wood floor":                "木地板",
	"Wood-fired generator":      "木柴发电机",
	"Work To Make":              "工作量",
	"World":                     "世界",
	"World Generation":          "世界生成",
	"Yorkshire terrier":         "约克夏㹴",
	"Zone":                      "区域",
	"bundle":                    "捆堆",
	"pawn":                      "殖民者",
	"pile":                      "织物",
	"raid":                      "袭击",
}
